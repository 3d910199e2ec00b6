package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/catalog"
	"github.com/kingrea/clawd-onboard/internal/logbook"
	"github.com/kingrea/clawd-onboard/internal/profile"
)

func frozenClock() time.Time { return time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC) }

func request(t *testing.T, root string, answers profile.Answers) Request {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	return Request{
		Answers:           answers,
		Catalog:           cat,
		Root:              root,
		Clock:             frozenClock,
		MaterializeSkills: true,
	}
}

// snapshot reads every file under root except the logs directory.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		if d.IsDir() {
			if rel == "logs" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestRunWritesFounderWorkspace(t *testing.T) {
	root := filepath.Join(t.TempDir(), "clawd")
	req := request(t, root, profile.Answers{
		UserType: "founder",
		Goals:    []string{"Close the seed round"},
		Tools:    []string{"email", "calendar"},
	})
	res, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, root, res.Root)
	assert.Equal(t, "founder", res.Config.User.Type)

	for _, rel := range []string{
		"config/clawdbot.yaml",
		"automations/morning-brief.yaml",
		"automations/investor-update.yaml",
		"AGENTS.md",
		"HEARTBEAT.md",
		"README.md",
		"morning-brief.md",
		"templates/founder-automation-template.json",
		"openclaw-skills-config.json",
		"skills/email/SKILL.md",
		"skills/crm/package.json",
	} {
		assert.FileExists(t, filepath.Join(root, filepath.FromSlash(rel)))
		assert.Contains(t, res.Files, rel)
	}
	for _, dir := range artifact.Layout {
		assert.DirExists(t, filepath.Join(root, dir))
	}
	assert.NoFileExists(t, filepath.Join(root, "automations", "code-review.yaml"))

	lines, total := logbook.ForWorkspace(root).Tail(5)
	require.Equal(t, 1, total)
	assert.Contains(t, lines[0], "for founder using \"Founder Command Center\"")
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	req := request(t, root, profile.Answers{UserType: "engineer", Tools: []string{"github"}})

	_, err := Run(context.Background(), req)
	require.NoError(t, err)
	first := snapshot(t, root)

	_, err = Run(context.Background(), req)
	require.NoError(t, err)
	second := snapshot(t, root)

	assert.Equal(t, first, second)
	_, total := logbook.ForWorkspace(root).Tail(10)
	assert.Equal(t, 2, total)
}

func TestRunWithoutSkillScaffolds(t *testing.T) {
	root := t.TempDir()
	req := request(t, root, profile.Answers{UserType: "general"})
	req.MaterializeSkills = false
	res, err := Run(context.Background(), req)
	require.NoError(t, err)
	for _, f := range res.Files {
		assert.False(t, strings.HasPrefix(f, "skills/"), f)
	}
	assert.DirExists(t, filepath.Join(root, "skills"))
}

func TestRunTemplateNotFoundWritesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	_, err := Run(context.Background(), request(t, root, profile.Answers{UserType: "astronaut"}))
	require.ErrorIs(t, err, catalog.ErrTemplateNotFound)
	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "workspace root should not be created")
}

func TestRunSurfacesFileSystemError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "ws")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))
	_, err := Run(context.Background(), request(t, blocker, profile.Answers{UserType: "founder"}))
	var fsErr *artifact.FileSystemError
	require.ErrorAs(t, err, &fsErr)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, request(t, root, profile.Answers{UserType: "founder"}))
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunRequiresRoot(t *testing.T) {
	_, err := Run(context.Background(), request(t, " ", profile.Answers{UserType: "founder"}))
	require.Error(t, err)
}
