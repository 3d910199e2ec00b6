// Package pipeline runs one onboarding generation: assemble the
// Configuration, render every document and write them under the workspace
// root. Stages run sequentially with no rollback; re-running with the same
// inputs converges to the same files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/logbook"
	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/render"
)

// Request is the input of Run.
type Request struct {
	Answers profile.Answers
	Catalog profile.TemplateLookup
	Root    string
	// Clock stamps the Configuration and dates the morning brief. Defaults
	// to time.Now.
	Clock             func() time.Time
	MaterializeSkills bool
	Logger            *slog.Logger
	// Journal defaults to <Root>/logs/setup-history.log.
	Journal *logbook.Logbook
}

// Result describes a completed run.
type Result struct {
	Root   string
	Files  []string
	Config profile.Configuration
}

// Run executes the pipeline. A missing template fails before anything is
// written; a filesystem failure is returned as *artifact.FileSystemError and
// leaves earlier writes in place.
func Run(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Root) == "" {
		return Result{}, errors.New("pipeline: workspace root is required")
	}
	clock := req.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	cfg, err := profile.Assemble(req.Answers, req.Catalog, profile.WithClock(clock))
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: assemble: %w", err)
	}
	logger.Info("configuration assembled",
		"user_type", cfg.User.Type,
		"template", cfg.Template.Name,
		"integrations", cfg.Integrations.Keys(),
	)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	docs, err := render.Render(cfg, render.Options{Now: clock(), MaterializeSkills: req.MaterializeSkills})
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: render: %w", err)
	}
	logger.Debug("documents rendered", "count", len(docs))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	store := artifact.NewStore(req.Root)
	root, err := store.WriteAll(docs)
	if err != nil {
		logger.Error("workspace write failed", "root", req.Root, "error", err)
		return Result{}, err
	}
	files := render.Paths(docs)
	logger.Info("workspace written", "root", root, "files", len(files))

	journal := req.Journal
	if journal == nil {
		journal = logbook.ForWorkspace(root)
	}
	if err := journal.Info("generated %d files for %s using %q", len(files), cfg.User.Type, cfg.Template.Name); err != nil {
		logger.Warn("setup journal not updated", "error", err)
	}
	return Result{Root: root, Files: files, Config: cfg}, nil
}
