// Package logging builds the structured logger used by every command. Records
// go to <workspace>/logs/onboard.log as JSON through a rotating writer and,
// with --verbose, to stderr as text.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file inside the workspace logs directory.
const FileName = "onboard.log"

// Options configures New.
type Options struct {
	Level string
	// Verbose mirrors records to Stderr.
	Verbose bool
	Stderr  io.Writer
	// MaxSizeMB and MaxBackups tune rotation; zero values use 5 MB and 3 files.
	MaxSizeMB  int
	MaxBackups int
}

// Logger wraps slog.Logger and owns the rotating file.
type Logger struct {
	*slog.Logger
	file io.Closer
}

// Path returns the log file for a workspace.
func Path(workspaceDir string) string {
	return filepath.Join(workspaceDir, "logs", FileName)
}

// New creates a logger for workspaceDir. The log file and its directory are
// created on the first record, not here.
func New(workspaceDir string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	backups := opts.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	rotating := &lumberjack.Logger{
		Filename:   Path(workspaceDir),
		MaxSize:    maxSize,
		MaxBackups: backups,
	}
	handlers := []slog.Handler{slog.NewJSONHandler(rotating, &slog.HandlerOptions{Level: level})}
	if opts.Verbose && opts.Stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return &Logger{Logger: slog.New(fanout(handlers)), file: rotating}, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single informational line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.Logger == nil {
		return
	}
	l.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
// Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown log level: %s", level)
	}
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
