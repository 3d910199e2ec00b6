// Package profile holds the onboarding data model and assembles interview
// answers, a role template and integration toggles into one Configuration.
package profile

import (
	"errors"
	"strings"
	"time"
)

// ErrTemplateNotFound is returned when no template exists for a user type.
var ErrTemplateNotFound = errors.New("template not found")

// Defaults applied during assembly.
const (
	DefaultWorkspaceName = "clawd"
	DefaultExperience    = "beginner"
)

// CreatedLayout is the timestamp format written to generated files.
const CreatedLayout = time.RFC3339

// TemplateLookup resolves a template by user type.
type TemplateLookup interface {
	Lookup(role string) (Template, error)
}

// User is the interviewed person.
type User struct {
	Type       string
	Goals      []string
	Experience string
}

// Workspace carries the denormalized workspace settings.
type Workspace struct {
	Name        string
	Description string
	Skills      SkillSet
	Automations Automations
}

// Configuration is the canonical value every renderer reads. It is built
// once per run by Assemble and must not be mutated afterwards.
type Configuration struct {
	User         User
	Template     Template
	Integrations Integrations
	Workspace    Workspace
	Created      time.Time
}

// CreatedISO returns the creation timestamp as an RFC 3339 UTC string.
func (c Configuration) CreatedISO() string {
	return c.Created.UTC().Format(CreatedLayout)
}

// Option customizes Assemble.
type Option func(*assembler)

// WithClock overrides the clock used for the created timestamp.
func WithClock(clock func() time.Time) Option {
	return func(a *assembler) {
		if clock != nil {
			a.now = clock
		}
	}
}

type assembler struct {
	now func() time.Time
}

// Assemble merges answers, the template for answers.UserType and the
// integration toggles in answers.Tools. It has no side effects. The only
// failure is a missing template, reported as ErrTemplateNotFound.
func Assemble(answers Answers, lookup TemplateLookup, opts ...Option) (Configuration, error) {
	a := assembler{now: time.Now}
	for _, opt := range opts {
		opt(&a)
	}
	role := NormalizeRole(answers.UserType)
	if lookup == nil {
		return Configuration{}, ErrTemplateNotFound
	}
	tmpl, err := lookup.Lookup(role)
	if err != nil {
		return Configuration{}, err
	}
	tmpl = tmpl.Clone()

	experience := strings.TrimSpace(answers.Experience)
	if experience == "" {
		experience = DefaultExperience
	}
	name := strings.TrimSpace(answers.WorkspaceName)
	if name == "" {
		name = DefaultWorkspaceName
	}
	description := strings.TrimSpace(answers.WorkspaceDescription)
	if description == "" {
		description = tmpl.Description
	}

	return Configuration{
		User: User{
			Type:       role,
			Goals:      cleanList(answers.Goals),
			Experience: experience,
		},
		Template:     tmpl,
		Integrations: ExpandIntegrations(answers.Tools),
		Workspace: Workspace{
			Name:        name,
			Description: description,
			Skills:      tmpl.Skills.Clone(),
			Automations: classified(tmpl.Automations),
		},
		Created: a.now().UTC().Truncate(time.Second),
	}, nil
}
