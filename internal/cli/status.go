package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/clawd-onboard/internal/artifact"
)

// ErrNoWorkspace is returned by status when config/clawdbot.yaml is absent.
var ErrNoWorkspace = errors.New("no workspace found; run clawd-onboard init first")

// ErrWorkspaceIncomplete is returned by status when a required artifact is
// missing or unreadable.
var ErrWorkspaceIncomplete = errors.New("workspace is incomplete")

// workspaceSummary is the part of config/clawdbot.yaml that names the
// per-instance artifacts.
type workspaceSummary struct {
	Workspace struct {
		Name     string `yaml:"name"`
		UserType string `yaml:"user_type"`
	} `yaml:"workspace"`
	Skills []struct {
		Name string `yaml:"name"`
	} `yaml:"skills"`
}

func newStatusCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the generated files of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runStatus(cmd.OutOrStdout())
		},
	}
}

func (s *state) runStatus(out io.Writer) error {
	store := artifact.NewStore(s.cfg.WorkspaceDir)
	summary, err := readSummary(store)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Workspace %s (%s) at %s\n\n", color.CyanString(summary.Workspace.Name), summary.Workspace.UserType, store.Root())
	failed := 0
	for _, ref := range artifact.Refs() {
		for _, name := range instanceNames(ref, summary) {
			res := store.Check(ref, name)
			if !printCheck(out, ref.Path(name), res) {
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d artifact(s) need attention", ErrWorkspaceIncomplete, failed)
	}
	return nil
}

func readSummary(store *artifact.Store) (workspaceSummary, error) {
	var summary workspaceSummary
	data, err := os.ReadFile(store.Abs(artifact.ClawdbotConfig.Path("")))
	if errors.Is(err, fs.ErrNotExist) {
		return summary, fmt.Errorf("%w (looked in %s)", ErrNoWorkspace, store.Root())
	}
	if err != nil {
		return summary, err
	}
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("%s: %w", artifact.ClawdbotConfig.Path(""), err)
	}
	return summary, nil
}

// instanceNames returns the names to check ref against: one per skill for
// the per-skill files, the user type for the example template, and a single
// empty name for everything else.
func instanceNames(ref artifact.Ref, summary workspaceSummary) []string {
	switch ref.ID {
	case artifact.SkillDoc.ID, artifact.SkillManifest.ID:
		names := make([]string, 0, len(summary.Skills))
		for _, skill := range summary.Skills {
			names = append(names, skill.Name)
		}
		return names
	case artifact.ExampleTemplate.ID:
		return []string{summary.Workspace.UserType}
	default:
		return []string{""}
	}
}

// printCheck writes one status line and reports whether the result is
// acceptable.
func printCheck(out io.Writer, rel string, res artifact.CheckResult) bool {
	switch {
	case res.State == artifact.StateReady:
		fmt.Fprintf(out, "  %s %s\n", okMark, rel)
		return true
	case res.State == artifact.StateMissing && res.Ref.Optional:
		fmt.Fprintf(out, "  %s %s %s\n", color.HiBlackString("-"), rel, color.HiBlackString("(not generated)"))
		return true
	case res.State == artifact.StateMissing:
		fmt.Fprintf(out, "  %s %s %s\n", failMark, rel, color.RedString("missing"))
	default:
		fmt.Fprintf(out, "  %s %s %s: %v\n", warnMark, rel, color.YellowString(string(res.State)), res.Err)
	}
	return false
}
