package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSystemError reports a failed filesystem operation while materializing
// the workspace. Nothing written before the failure is rolled back.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("artifact: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// Store writes documents under a workspace root.
type Store struct {
	root     string
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithFileMode overrides the permission bits of written files.
func WithFileMode(mode fs.FileMode) StoreOption {
	return func(s *Store) {
		s.fileMode = mode
	}
}

// NewStore builds a store for the workspace at root.
func NewStore(root string, opts ...StoreOption) *Store {
	store := &Store{
		root:     filepath.Clean(root),
		dirMode:  0o755,
		fileMode: 0o644,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Root returns the workspace root.
func (s *Store) Root() string { return s.root }

// Abs joins a document's relative path onto the root.
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// EnsureLayout creates the workspace root and every Layout subdirectory.
func (s *Store) EnsureLayout() error {
	for _, dir := range append([]string{""}, Layout...) {
		p := s.Abs(dir)
		if err := os.MkdirAll(p, s.dirMode); err != nil {
			return &FileSystemError{Op: "mkdir", Path: p, Err: err}
		}
	}
	return nil
}

// escapesRoot reports whether the cleaned relative path leaves the root.
// Names that merely start with dots, like "..notes.md", stay inside.
func escapesRoot(rel string) bool {
	clean := filepath.Clean(filepath.FromSlash(rel))
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// Write persists one document, creating intermediate directories and
// overwriting any existing file.
func (s *Store) Write(doc Document) error {
	rel := strings.TrimSpace(doc.Path)
	if rel == "" {
		return &FileSystemError{Op: "write", Path: s.root, Err: errors.New("document path is empty")}
	}
	if filepath.IsAbs(rel) || escapesRoot(rel) {
		return &FileSystemError{Op: "write", Path: rel, Err: errors.New("document path escapes the workspace")}
	}
	p := s.Abs(rel)
	if doc.Kind == KindDirectory {
		if err := os.MkdirAll(p, s.dirMode); err != nil {
			return &FileSystemError{Op: "mkdir", Path: p, Err: err}
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), s.dirMode); err != nil {
		return &FileSystemError{Op: "mkdir", Path: filepath.Dir(p), Err: err}
	}
	if err := os.WriteFile(p, doc.Content, s.fileMode); err != nil {
		return &FileSystemError{Op: "write", Path: p, Err: err}
	}
	return nil
}

// WriteAll ensures the layout exists and then writes docs in order. It
// returns the workspace root. The first failure stops the run and is returned
// as-is; earlier writes are kept.
func (s *Store) WriteAll(docs []Document) (string, error) {
	if err := s.EnsureLayout(); err != nil {
		return "", err
	}
	for _, doc := range docs {
		if err := s.Write(doc); err != nil {
			return "", err
		}
	}
	return s.root, nil
}

// Check inspects an artifact on disk. For YAML and JSON artifacts the file
// must also decode; for SKILL.md documents the frontmatter must parse.
func (s *Store) Check(ref Ref, name string) CheckResult {
	rel := ref.Path(name)
	if rel == "" || rel == "." {
		return CheckResult{Ref: ref, Path: rel, State: StateError, Err: fmt.Errorf("artifact: %s path could not be resolved", ref.ID)}
	}
	p := s.Abs(rel)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckResult{Ref: ref, Path: p, State: StateMissing}
		}
		return CheckResult{Ref: ref, Path: p, State: StateError, Err: err}
	}
	if ref.Kind == KindDirectory {
		if !info.IsDir() {
			return invalidResult(ref, p, fmt.Errorf("artifact: expected directory"))
		}
		return CheckResult{Ref: ref, Path: p, State: StateReady}
	}
	if info.IsDir() {
		return invalidResult(ref, p, fmt.Errorf("artifact: expected file got directory"))
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return CheckResult{Ref: ref, Path: p, State: StateError, Err: err}
	}
	switch ref.Kind {
	case KindYAML:
		var payload any
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return invalidResult(ref, p, fmt.Errorf("artifact: parse yaml: %w", err))
		}
	case KindJSON:
		if !json.Valid(data) {
			return invalidResult(ref, p, fmt.Errorf("artifact: invalid json"))
		}
	case KindMarkdown:
		if ref.ID == SkillDoc.ID {
			var meta map[string]any
			if _, err := ParseFrontMatter(data, &meta); err != nil {
				return invalidResult(ref, p, err)
			}
		}
	}
	return CheckResult{Ref: ref, Path: p, State: StateReady}
}

func invalidResult(ref Ref, path string, err error) CheckResult {
	return CheckResult{Ref: ref, Path: path, State: StateInvalid, Err: err}
}
