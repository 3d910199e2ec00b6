// Package logbook keeps the human-readable setup journal at
// <workspace>/logs/setup-history.log. Each line carries a UTC timestamp, a
// level and the run id of the invocation that wrote it.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileName is the journal file inside the workspace logs directory.
const FileName = "setup-history.log"

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook appends entries to a text file. The file and its directory are
// created on the first entry so that an aborted run leaves nothing behind.
type Logbook struct {
	path  string
	runID string
	now   func() time.Time
	mu    sync.Mutex
}

// Option customizes a Logbook.
type Option func(*Logbook)

// WithClock overrides the entry timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logbook) {
		if now != nil {
			l.now = now
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(l *Logbook) {
		if id = strings.TrimSpace(id); id != "" {
			l.runID = id
		}
	}
}

// New creates a logbook that writes to path.
func New(path string, opts ...Option) *Logbook {
	book := &Logbook{
		path:  path,
		runID: uuid.NewString()[:8],
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(book)
	}
	return book
}

// ForWorkspace returns the journal for a workspace root.
func ForWorkspace(root string, opts ...Option) *Logbook {
	return New(filepath.Join(root, "logs", FileName), opts...)
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID identifies entries written by this logbook.
func (l *Logbook) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Append writes a single entry.
func (l *Logbook) Append(level Level, message string) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s %-5s [%s] %s\n",
		l.now().UTC().Format(time.RFC3339),
		string(level),
		l.runID,
		strings.TrimSpace(message),
	)
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("logbook: ensure dir: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logbook: open: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("logbook: write: %w", err)
	}
	return nil
}

// Tail returns up to maxLines of the most recent entries and the total number
// of entries in the file. A missing file yields no lines.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total == 0 {
		return nil, 0
	}
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) error {
	return l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) error {
	return l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) error {
	return l.Append(LevelError, fmt.Sprintf(format, args...))
}
