package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kingrea/clawd-onboard/internal/catalog"
	"github.com/kingrea/clawd-onboard/internal/logbook"
	"github.com/kingrea/clawd-onboard/internal/pipeline"
	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/tui"
)

// ErrRoleRequired is returned when no interview can run and no role was given.
var ErrRoleRequired = errors.New("a role is required: pass --role or --answers, or run in a terminal")

type initFlags struct {
	role           string
	goals          []string
	experience     string
	tools          []string
	name           string
	description    string
	answersFile    string
	nonInteractive bool
	skipChecks     bool
	noSkills       bool
}

func newInitCommand(s *state) *cobra.Command {
	var f initFlags
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interview the user and generate the workspace",
		Long: `Generate a clawdbot workspace. Without --role or --answers, an
interactive interview runs when a terminal is attached.`,
		Example: `  clawd-onboard init
  clawd-onboard init --role founder --goals "ship v1,hire" --tools email,calendar
  clawd-onboard init --answers answers.yaml --workspace ./clawd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runInit(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.role, "role", "r", "", "user type (founder, engineer, ...)")
	fl.StringSliceVarP(&f.goals, "goals", "g", nil, "comma separated goals")
	fl.StringVar(&f.experience, "experience", "", "experience level (beginner, intermediate, advanced)")
	fl.StringSliceVarP(&f.tools, "tools", "t", nil, "comma separated tools (email, calendar, github, ...)")
	fl.StringVar(&f.name, "name", "", "workspace name")
	fl.StringVar(&f.description, "description", "", "workspace description")
	fl.StringVarP(&f.answersFile, "answers", "a", "", "YAML file holding interview answers")
	fl.BoolVar(&f.nonInteractive, "non-interactive", false, "never start the interview")
	fl.BoolVar(&f.skipChecks, "skip-checks", false, "skip the runtime preflight check")
	fl.BoolVar(&f.noSkills, "no-skills", false, "do not scaffold skills/<name>/ folders")
	return cmd
}

func (s *state) runInit(cmd *cobra.Command, f initFlags) error {
	out := cmd.OutOrStdout()

	if !f.skipChecks && !s.cfg.SkipChecks {
		report, err := s.runChecks(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s %s found at %s\n", okMark, s.cfg.RuntimeBinary, report.Version, report.Path)
	}

	cat, err := catalog.Load(s.cfg.TemplatesDir)
	if err != nil {
		return err
	}

	answers, err := answersFromFlags(cmd, f)
	if err != nil {
		return err
	}

	journal := logbook.ForWorkspace(s.cfg.WorkspaceDir)
	if answers.UserType == "" {
		if f.nonInteractive || !s.env.Interactive() {
			return ErrRoleRequired
		}
		app := tui.NewApp(cat, tui.WithDefaults(answers), tui.WithLogbook(journal))
		answers, err = tui.Run(app)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintf(out, "  %s %s\n", warnMark, "Setup cancelled, nothing was written.")
				return nil
			}
			return err
		}
	}

	logger, err := s.openLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	result, err := pipeline.Run(cmd.Context(), pipeline.Request{
		Answers:           answers,
		Catalog:           cat,
		Root:              s.cfg.WorkspaceDir,
		Clock:             s.env.Clock,
		MaterializeSkills: s.cfg.MaterializeSkills && !f.noSkills,
		Logger:            logger.Logger,
		Journal:           journal,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			return fmt.Errorf("%w (known roles: %s)", err, strings.Join(cat.Roles(), ", "))
		}
		return err
	}

	fmt.Fprintf(out, "  %s Workspace %s ready at %s\n", okMark, color.CyanString(result.Config.Workspace.Name), result.Root)
	for _, file := range result.Files {
		fmt.Fprintf(out, "    %s %s\n", okMark, file)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Next: %s\n", color.WhiteString("cd %s && %s start", result.Root, s.cfg.RuntimeBinary))
	return nil
}

// answersFromFlags starts from the answers file, if any, and lets explicit
// flags override individual fields.
func answersFromFlags(cmd *cobra.Command, f initFlags) (profile.Answers, error) {
	var answers profile.Answers
	if f.answersFile != "" {
		loaded, err := profile.LoadAnswersFile(f.answersFile)
		if err != nil {
			return profile.Answers{}, err
		}
		answers = loaded
	}
	fl := cmd.Flags()
	if fl.Changed("role") {
		answers.UserType = f.role
	}
	if fl.Changed("goals") {
		answers.Goals = f.goals
	}
	if fl.Changed("experience") {
		answers.Experience = f.experience
	}
	if fl.Changed("tools") {
		answers.Tools = f.tools
	}
	if fl.Changed("name") {
		answers.WorkspaceName = f.name
	}
	if fl.Changed("description") {
		answers.WorkspaceDescription = f.description
	}
	answers.UserType = profile.NormalizeRole(answers.UserType)
	return answers, nil
}
