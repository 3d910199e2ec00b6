// Package cli wires the clawd-onboard commands. Each command resolves the
// layered configuration first, then does its work against the workspace it
// points at.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kingrea/clawd-onboard/internal/config"
	"github.com/kingrea/clawd-onboard/internal/logging"
	"github.com/kingrea/clawd-onboard/internal/preflight"
)

// Env carries the process surroundings so commands can be tested in
// isolation.
type Env struct {
	Version string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	// Interactive reports whether the terminal can host the interview.
	Interactive func() bool
	Runner      preflight.Runner
	Clock       func() time.Time
	Home        string
	DotEnv      string
}

// DefaultEnv describes the real process.
func DefaultEnv(version string) Env {
	return Env{
		Version:     version,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: terminalAttached,
		Runner:      preflight.SystemRunner(),
		Clock:       time.Now,
	}
}

func terminalAttached() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

type globalFlags struct {
	configFile string
	workspace  string
	logLevel   string
	verbose    bool
}

type state struct {
	env   Env
	flags globalFlags
	cfg   *config.Config
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// NewRootCommand builds the command tree.
func NewRootCommand(env Env) *cobra.Command {
	if env.Stdout == nil {
		env.Stdout = io.Discard
	}
	if env.Stderr == nil {
		env.Stderr = io.Discard
	}
	if env.Clock == nil {
		env.Clock = time.Now
	}
	if env.Interactive == nil {
		env.Interactive = func() bool { return false }
	}
	s := &state{env: env}

	root := &cobra.Command{
		Use:           "clawd-onboard",
		Short:         "Set up a clawdbot assistant workspace",
		Long:          "clawd-onboard interviews you about your role and tools and generates a ready-to-use clawdbot workspace.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.loadConfig()
		},
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.configFile, "config", "", "config file (default $"+config.EnvConfigFile+")")
	pf.StringVarP(&s.flags.workspace, "workspace", "w", "", "workspace directory (overrides workspace_dir)")
	pf.StringVar(&s.flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVarP(&s.flags.verbose, "verbose", "v", false, "mirror log records to stderr")

	root.AddCommand(
		newInitCommand(s),
		newTemplatesCommand(s),
		newStatusCommand(s),
		newHistoryCommand(s),
		newDoctorCommand(s),
		newConfigCommand(s),
		newVersionCommand(s),
	)
	return root
}

func (s *state) loadConfig() error {
	cfg, err := config.Load(config.LoadOptions{File: s.flags.configFile, DotEnv: s.env.DotEnv, Home: s.env.Home})
	if err != nil {
		return err
	}
	if s.flags.workspace != "" {
		cfg.WorkspaceDir = config.ExpandPath(s.flags.workspace, s.env.Home)
	}
	if s.flags.logLevel != "" {
		if _, err := logging.ParseLevel(s.flags.logLevel); err != nil {
			return err
		}
		cfg.LogLevel = s.flags.logLevel
	}
	s.cfg = cfg
	return nil
}

func (s *state) openLogger() (*logging.Logger, error) {
	return logging.New(s.cfg.WorkspaceDir, logging.Options{
		Level:   s.cfg.LogLevel,
		Verbose: s.flags.verbose,
		Stderr:  s.env.Stderr,
	})
}

func (s *state) runChecks(cmd *cobra.Command) (preflight.Report, error) {
	check := preflight.Check{
		Binary:     s.cfg.RuntimeBinary,
		MinVersion: s.cfg.RuntimeMinVersion,
		Runner:     s.env.Runner,
	}
	return check.Run(cmd.Context())
}

// Execute runs the CLI and returns the process exit code.
func Execute(env Env, args []string) int {
	root := NewRootCommand(env)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(env.Stderr, "%s %s\n", failMark, color.RedString(err.Error()))
		if errors.Is(err, preflight.ErrRuntimeMissing) || errors.Is(err, preflight.ErrRuntimeTooOld) {
			fmt.Fprintln(env.Stderr, color.WhiteString("Install or upgrade the runtime, or pass --skip-checks to continue anyway."))
		}
		return 1
	}
	return 0
}
