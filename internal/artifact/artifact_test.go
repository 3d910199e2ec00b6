package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRefPathsResolvePerInstance(t *testing.T) {
	if got := SkillDoc.Path("Web Search"); got != "skills/web-search/SKILL.md" {
		t.Fatalf("expected skills/web-search/SKILL.md, got %s", got)
	}
	if got := ExampleTemplate.Path("founder"); got != "templates/founder-automation-template.json" {
		t.Fatalf("unexpected template path %s", got)
	}
	if got := ClawdbotConfig.Path("ignored"); got != "config/clawdbot.yaml" {
		t.Fatalf("unexpected config path %s", got)
	}
	for _, ref := range Refs() {
		if err := ref.Validate(); err != nil {
			t.Fatalf("registered ref invalid: %v", err)
		}
	}
	if _, ok := Lookup("agents-doc"); !ok {
		t.Fatalf("expected agents-doc to be registered")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"github":      "github",
		"Web Search!": "web-search",
		"  ":          "unnamed",
		"code_review": "code_review",
		"a//b":        "a-b",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestWriteAllCreatesLayoutAndOverwrites(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	store := NewStore(root)
	docs := []Document{
		NewDocument(ReadmeDoc, "", []byte("first\n")),
		NewDocument(SkillDoc, "github", []byte("---\nname: github\n---\n\nbody\n")),
	}
	got, err := store.WriteAll(docs)
	if err != nil {
		t.Fatalf("WriteAll returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root %s, got %s", root, got)
	}
	for _, dir := range Layout {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected layout dir %s to exist", dir)
		}
	}
	docs[0].Content = []byte("second\n")
	if _, err := store.WriteAll(docs); err != nil {
		t.Fatalf("second WriteAll returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second\n" {
		t.Fatalf("expected overwritten README, got %q", data)
	}
}

func TestWriteLeavesUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(keep, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(root).WriteAll([]Document{NewDocument(HeartbeatDoc, "", []byte("hb"))}); err != nil {
		t.Fatalf("WriteAll returned error: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("expected unrelated file to survive, got %v", err)
	}
}

func TestWriteRejectsEscapingPath(t *testing.T) {
	for _, rel := range []string{"../outside.md", "..", "docs/../../outside.md"} {
		err := NewStore(t.TempDir()).Write(Document{Path: rel, Kind: KindMarkdown})
		var fsErr *FileSystemError
		if !errors.As(err, &fsErr) {
			t.Fatalf("expected FileSystemError for %s, got %v", rel, err)
		}
	}
}

func TestWriteAcceptsDotPrefixedNames(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	for _, rel := range []string{"..notes.md", "docs/..draft.md"} {
		if err := store.Write(Document{Path: rel, Kind: KindMarkdown, Content: []byte("x")}); err != nil {
			t.Fatalf("Write(%s) returned error: %v", rel, err)
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s to exist, got %v", rel, err)
		}
	}
}

func TestWriteAllReportsFileSystemError(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "ws")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewStore(blocker).WriteAll(nil)
	var fsErr *FileSystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected FileSystemError, got %v", err)
	}
	if fsErr.Op != "mkdir" {
		t.Fatalf("expected mkdir op, got %s", fsErr.Op)
	}
}

func TestCheckStates(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	if res := store.Check(ClawdbotConfig, ""); res.State != StateMissing {
		t.Fatalf("expected missing, got %s", res.State)
	}
	if err := store.Write(NewDocument(ClawdbotConfig, "", []byte("clawdbot: [unterminated\n"))); err != nil {
		t.Fatal(err)
	}
	if res := store.Check(ClawdbotConfig, ""); res.State != StateInvalid {
		t.Fatalf("expected invalid yaml, got %s", res.State)
	}
	if err := store.Write(NewDocument(SkillsConfig, "", []byte(`{"skills":{}}`))); err != nil {
		t.Fatal(err)
	}
	if res := store.Check(SkillsConfig, ""); res.State != StateReady {
		t.Fatalf("expected ready json, got %s (%v)", res.State, res.Err)
	}
	if err := store.Write(NewDocument(SkillDoc, "email", []byte("no frontmatter"))); err != nil {
		t.Fatal(err)
	}
	res := store.Check(SkillDoc, "email")
	if res.State != StateInvalid || !errors.Is(res.Err, ErrMissingFrontMatter) {
		t.Fatalf("expected missing frontmatter, got %s (%v)", res.State, res.Err)
	}
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	if res := store.Check(LogsDirectory, ""); res.State != StateReady {
		t.Fatalf("expected logs dir ready, got %s", res.State)
	}
}

func TestFrontMatterRoundTrip(t *testing.T) {
	type meta struct {
		Name    string `yaml:"name"`
		Enabled bool   `yaml:"enabled"`
	}
	doc, err := WriteFrontMatter(meta{Name: "github", Enabled: true}, []byte("# GitHub\n"))
	if err != nil {
		t.Fatalf("WriteFrontMatter returned error: %v", err)
	}
	if !strings.HasPrefix(string(doc), "---\nname: github\nenabled: true\n---\n\n") {
		t.Fatalf("unexpected frontmatter layout %q", doc)
	}
	var got meta
	body, err := ParseFrontMatter(doc, &got)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	if got.Name != "github" || !got.Enabled {
		t.Fatalf("unexpected meta %+v", got)
	}
	if string(body) != "# GitHub\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterMalformed(t *testing.T) {
	var out map[string]any
	if _, err := ParseFrontMatter([]byte("---\nname: x\n"), &out); !errors.Is(err, ErrMalformedFrontMatter) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}
