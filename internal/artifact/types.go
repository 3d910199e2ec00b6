// Package artifact defines the files that make up a generated workspace. Each
// artifact has a stable identifier, a kind, and a resolver that maps it to a
// path relative to the workspace root. Store materializes Documents on disk.

package artifact

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Kind captures the serialization format of an artifact.
type Kind string

const (
	// KindMarkdown is a Markdown document, optionally with YAML frontmatter.
	KindMarkdown Kind = "markdown"
	// KindYAML is a YAML document.
	KindYAML Kind = "yaml"
	// KindJSON is a JSON document.
	KindJSON Kind = "json"
	// KindDirectory is a directory that must exist.
	KindDirectory Kind = "directory"
)

// PathResolver returns the slash-separated path of an artifact relative to
// the workspace root. name parameterizes per-instance artifacts such as the
// per-skill files; static artifacts ignore it.
type PathResolver func(name string) string

// Ref declares a stable identifier and metadata for an artifact.
type Ref struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Optional    bool
	path        PathResolver
}

// Path resolves the relative path for the given instance name.
func (r Ref) Path(name string) string {
	if r.path == nil {
		return ""
	}
	return path.Clean(r.path(name))
}

// Validate ensures the reference is well-formed.
func (r Ref) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("artifact: id is required")
	}
	if r.Kind == "" {
		return fmt.Errorf("artifact: kind is required for %s", r.ID)
	}
	if r.path == nil {
		return fmt.Errorf("artifact: path resolver missing for %s", r.ID)
	}
	return nil
}

// Document is one rendered artifact: a relative path plus its content.
type Document struct {
	Path    string
	Kind    Kind
	Content []byte
}

// NewDocument binds content to the path of ref for instance name.
func NewDocument(ref Ref, name string, content []byte) Document {
	return Document{Path: ref.Path(name), Kind: ref.Kind, Content: content}
}

// State captures the readiness of an artifact on disk.
type State string

const (
	StateMissing State = "missing"
	StateReady   State = "ready"
	StateInvalid State = "invalid"
	StateError   State = "error"
)

// CheckResult captures Store.Check results.
type CheckResult struct {
	Ref   Ref
	Path  string
	State State
	Err   error
}

var refs map[string]Ref

func register(ref Ref) Ref {
	if refs == nil {
		refs = map[string]Ref{}
	}
	refs[ref.ID] = ref
	return ref
}

// Lookup returns a registered artifact reference by ID.
func Lookup(id string) (Ref, bool) {
	ref, ok := refs[id]
	return ref, ok
}

// Refs returns every registered reference sorted by ID.
func Refs() []Ref {
	out := make([]Ref, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func staticPath(p string) PathResolver {
	return func(string) string { return p }
}

func newRef(id, name, desc string, kind Kind, resolver PathResolver) Ref {
	return Ref{ID: id, Name: name, Description: desc, Kind: kind, path: resolver}
}

// optional marks artifacts that only some roles produce.
func optional(ref Ref) Ref {
	ref.Optional = true
	return ref
}

// Layout lists the workspace subdirectories created before any file is written.
var Layout = []string{
	"config",
	"automations",
	"workflows",
	"integrations",
	"docs",
	"logs",
	"templates",
	"skills",
}

// Slug lower-cases name and replaces anything outside [a-z0-9_-] with '-'.
// It is used to turn user types and skill names into path segments.
func Slug(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "unnamed"
	}
	return slug
}

// Canonical workspace artifacts.
var (
	ClawdbotConfig = register(newRef("clawdbot-config", "Runtime Configuration", "config/clawdbot.yaml consumed by the runtime", KindYAML, staticPath("config/clawdbot.yaml")))

	MorningBriefAutomation   = register(newRef("morning-brief-automation", "Morning Brief Automation", "automations/morning-brief.yaml", KindYAML, staticPath("automations/morning-brief.yaml")))
	InvestorUpdateAutomation = register(optional(newRef("investor-update-automation", "Investor Update Automation", "automations/investor-update.yaml (founder only)", KindYAML, staticPath("automations/investor-update.yaml"))))
	CodeReviewAutomation     = register(optional(newRef("code-review-automation", "Code Review Automation", "automations/code-review.yaml (engineer only)", KindYAML, staticPath("automations/code-review.yaml"))))

	AgentsDoc       = register(newRef("agents-doc", "Operating Instructions", "AGENTS.md describing role, automations and skills", KindMarkdown, staticPath("AGENTS.md")))
	HeartbeatDoc    = register(newRef("heartbeat-doc", "Heartbeat", "HEARTBEAT.md with daily, weekly and monthly tasks", KindMarkdown, staticPath("HEARTBEAT.md")))
	ReadmeDoc       = register(newRef("readme", "Workspace README", "README.md with setup summary and next steps", KindMarkdown, staticPath("README.md")))
	MorningBriefDoc = register(newRef("morning-brief-doc", "Morning Brief", "morning-brief.md sample briefing", KindMarkdown, staticPath("morning-brief.md")))

	ExampleTemplate = register(newRef("example-template", "Automation Template Example", "templates/<user_type>-automation-template.json", KindJSON, func(userType string) string {
		return path.Join("templates", Slug(userType)+"-automation-template.json")
	}))
	SkillsConfig = register(newRef("skills-config", "Skills Configuration", "openclaw-skills-config.json runtime skills snippet", KindJSON, staticPath("openclaw-skills-config.json")))

	SkillDoc = register(optional(newRef("skill-doc", "Skill Description", "skills/<skill>/SKILL.md", KindMarkdown, func(skill string) string {
		return path.Join("skills", Slug(skill), "SKILL.md")
	})))
	SkillManifest = register(optional(newRef("skill-manifest", "Skill Manifest", "skills/<skill>/package.json", KindJSON, func(skill string) string {
		return path.Join("skills", Slug(skill), "package.json")
	})))

	SkillsDirectory = register(newRef("skills-dir", "Skills Directory", "skills/ folder holding skill scaffolds", KindDirectory, staticPath("skills")))
	LogsDirectory   = register(newRef("logs-dir", "Logs Directory", "logs/ folder holding the setup journal", KindDirectory, staticPath("logs")))
)
