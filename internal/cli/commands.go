package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kingrea/clawd-onboard/internal/catalog"
	"github.com/kingrea/clawd-onboard/internal/config"
	"github.com/kingrea/clawd-onboard/internal/logbook"
)

func newTemplatesCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Aliases: []string{"roles"},
		Short:   "List the available role templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(s.cfg.TemplatesDir)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, role := range cat.Roles() {
				summary, _ := cat.Describe(role)
				entry, _ := cat.Entry(role)
				fmt.Fprintf(w, "%s\t%s\t%s\n", role, summary, color.HiBlackString(entry.Source))
			}
			return w.Flush()
		},
	}
}

func newHistoryCommand(s *state) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest setup journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			book := logbook.New(s.cfg.HistoryPath())
			tail, total := book.Tail(lines)
			if total == 0 {
				fmt.Fprintf(out, "No setup history at %s\n", book.Path())
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if total > len(tail) {
				fmt.Fprintln(out, color.HiBlackString("(%d of %d entries)", len(tail), total))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of entries to show")
	return cmd
}

func newDoctorCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the runtime and the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			source := s.cfg.Source
			if source == "" {
				source = "built-in defaults"
			}
			fmt.Fprintf(out, "  %s config loaded from %s\n", okMark, source)
			fmt.Fprintf(out, "  %s workspace directory %s\n", okMark, s.cfg.WorkspaceDir)

			cat, err := catalog.Load(s.cfg.TemplatesDir)
			if err != nil {
				fmt.Fprintf(out, "  %s templates: %v\n", failMark, err)
				return err
			}
			fmt.Fprintf(out, "  %s %d role templates (%s)\n", okMark, len(cat.Roles()), strings.Join(cat.Roles(), ", "))

			report, err := s.runChecks(cmd)
			if err != nil {
				fmt.Fprintf(out, "  %s %v\n", failMark, err)
				return err
			}
			fmt.Fprintf(out, "  %s %s %s at %s (minimum %s)\n", okMark, s.cfg.RuntimeBinary, report.Version, report.Path, report.Minimum)
			return nil
		},
	}
}

func newConfigCommand(s *state) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings or write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if write != "" {
				created, err := config.WriteDefault(config.ExpandPath(write, s.env.Home))
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(out, "  %s wrote %s\n", okMark, write)
				} else {
					fmt.Fprintf(out, "  %s %s already exists, left unchanged\n", warnMark, write)
				}
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "workspace_dir\t%s\n", s.cfg.WorkspaceDir)
			fmt.Fprintf(w, "templates_dir\t%s\n", s.cfg.TemplatesDir)
			fmt.Fprintf(w, "log_level\t%s\n", s.cfg.LogLevel)
			fmt.Fprintf(w, "materialize_skills\t%t\n", s.cfg.MaterializeSkills)
			fmt.Fprintf(w, "runtime_binary\t%s\n", s.cfg.RuntimeBinary)
			fmt.Fprintf(w, "runtime_min_version\t%s\n", s.cfg.RuntimeMinVersion)
			fmt.Fprintf(w, "skip_checks\t%t\n", s.cfg.SkipChecks)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "write the default config to this path if it does not exist")
	return cmd
}

func newVersionCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// version works even when the config does not load.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			version := s.env.Version
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "clawd-onboard %s\n", version)
		},
	}
}
