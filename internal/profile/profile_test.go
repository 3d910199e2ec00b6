package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/clawd-onboard/internal/schedule"
)

type mapLookup map[string]Template

func (m mapLookup) Lookup(role string) (Template, error) {
	tmpl, ok := m[role]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, role)
	}
	return tmpl, nil
}

const templateYAML = `
name: Founder Command Center
description: Run the company
automations:
  morning_brief:
    schedule: 8:00 AM daily
    includes: [calendar_review, email_triage]
  investor_pipeline:
    schedule: Weekly Friday 4:00 PM
    priority: high
  board_prep:
    schedule: first monday
    category: monthly
  pr_watch:
    schedule: On PR creation
skills: [email, calendar]
`

func decodeTemplate(t *testing.T, data string) Template {
	t.Helper()
	var tmpl Template
	require.NoError(t, yaml.Unmarshal([]byte(data), &tmpl))
	return tmpl
}

func TestAutomationsKeepDeclarationOrder(t *testing.T) {
	tmpl := decodeTemplate(t, templateYAML)
	assert.Equal(t, []string{"morning_brief", "investor_pipeline", "board_prep", "pr_watch"}, tmpl.Automations.Keys())

	spec, ok := tmpl.Automations.Get("morning_brief")
	require.True(t, ok)
	assert.Equal(t, DefaultPriority, spec.PriorityOrDefault())
	assert.Equal(t, []string{"calendar_review", "email_triage"}, spec.Includes)

	encoded, err := json.Marshal(tmpl.Automations)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"morning_brief".*"investor_pipeline".*"board_prep".*"pr_watch"`, string(encoded))
}

func TestAutomationsRejectDuplicates(t *testing.T) {
	var autos Automations
	err := yaml.Unmarshal([]byte("a: {schedule: daily}\na: {schedule: weekly}\n"), &autos)
	require.Error(t, err)
}

func TestAutomationsYAMLRoundTrip(t *testing.T) {
	tmpl := decodeTemplate(t, templateYAML)
	out, err := yaml.Marshal(tmpl.Automations)
	require.NoError(t, err)
	var again Automations
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, tmpl.Automations.Keys(), again.Keys())
}

func TestSkillSetShapesNormalizeToSameNames(t *testing.T) {
	inputs := map[string]string{
		"list":          "[email, calendar]",
		"list of maps":  "[{name: email}, {name: calendar, enabled: false}]",
		"map":           "{email: {enabled: true}, calendar: {}}",
		"entries":       "{entries: {email: {enabled: true, apiKey: abc}, calendar: null}}",
		"bool shortcut": "{email: true, calendar: 'false'}",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var set SkillSet
			require.NoError(t, yaml.Unmarshal([]byte(input), &set))
			assert.Equal(t, []string{"email", "calendar"}, set.Names())
		})
	}
}

func TestSkillSetMapFormKeepsOverrides(t *testing.T) {
	var set SkillSet
	require.NoError(t, yaml.Unmarshal([]byte(`
entries:
  github:
    enabled: "false"
    description: Repo helper
    env:
      GITHUB_TOKEN: placeholder
`), &set))
	require.Equal(t, SkillFormMap, set.Form)
	require.Len(t, set.Items, 1)
	spec := set.Items[0].Spec
	assert.False(t, spec.Enabled)
	assert.Equal(t, "Repo helper", spec.Description)
	require.Len(t, spec.Overrides, 2)
	assert.Equal(t, Field{Key: "enabled", Value: false}, spec.Overrides[0])
	assert.Equal(t, "env", spec.Overrides[1].Key)
	_, err := json.Marshal(spec.Overrides[1].Value)
	assert.NoError(t, err)
}

func TestSkillSetErrors(t *testing.T) {
	var set SkillSet
	assert.Error(t, yaml.Unmarshal([]byte("[email, email]"), &set))
	assert.Error(t, yaml.Unmarshal([]byte("[{enabled: true}]"), &set))
	assert.Error(t, yaml.Unmarshal([]byte("{email: {enabled: maybe}}"), &set))
	assert.Error(t, yaml.Unmarshal([]byte("just-a-string"), &set))
}

func TestSkillSetRejectsSharedFolder(t *testing.T) {
	for name, input := range map[string]string{
		"list": `["web search", web-search]`,
		"map":  `{"Web Search": {}, web-search: {}}`,
	} {
		t.Run(name, func(t *testing.T) {
			var set SkillSet
			err := yaml.Unmarshal([]byte(input), &set)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "skills/web-search")
		})
	}
}

func TestSkillSetSkillNamedEntries(t *testing.T) {
	var set SkillSet
	require.NoError(t, yaml.Unmarshal([]byte("{entries: {enabled: true}}"), &set))
	require.Equal(t, []string{"entries"}, set.Names())
	assert.True(t, set.Items[0].Spec.Enabled)

	require.NoError(t, yaml.Unmarshal([]byte("{entries: {email: {}, calendar: null}}"), &set))
	assert.Equal(t, []string{"email", "calendar"}, set.Names())
}

func TestExpandIntegrations(t *testing.T) {
	got := ExpandIntegrations([]string{"social", " GitHub ", "fax", "email", "email"})
	assert.Equal(t, []string{"email", "github", "social"}, got.Keys())
	gh, ok := got.Get("github")
	require.True(t, ok)
	assert.Equal(t, []string{"pr_reviews", "issue_tracking", "repo_analytics"}, gh.Features)
	social, _ := got.Get("social")
	assert.Equal(t, []string{"twitter", "linkedin"}, social.Platforms)
	assert.Equal(t, 0, ExpandIntegrations(nil).Len())
}

func TestAssemble(t *testing.T) {
	tmpl := decodeTemplate(t, templateYAML)
	frozen := time.Date(2026, 10, 14, 8, 30, 15, 999, time.FixedZone("X", 3600))
	cfg, err := Assemble(Answers{
		UserType: " Founder ",
		Goals:    []string{"ship v1", " ", "raise seed"},
		Tools:    []string{"email", "unknown-tool"},
	}, mapLookup{"founder": tmpl}, WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)

	assert.Equal(t, "founder", cfg.User.Type)
	assert.Equal(t, []string{"ship v1", "raise seed"}, cfg.User.Goals)
	assert.Equal(t, DefaultExperience, cfg.User.Experience)
	assert.Equal(t, DefaultWorkspaceName, cfg.Workspace.Name)
	assert.Equal(t, "Run the company", cfg.Workspace.Description)
	assert.Equal(t, []string{"email"}, cfg.Integrations.Keys())
	assert.Equal(t, "2026-10-14T07:30:15Z", cfg.CreatedISO())
	assert.Equal(t, []string{"email", "calendar"}, cfg.Workspace.Skills.Names())

	buckets := map[string]schedule.Category{}
	cfg.Workspace.Automations.Each(func(name string, spec AutomationSpec) {
		buckets[name] = spec.Category
	})
	assert.Equal(t, map[string]schedule.Category{
		"morning_brief":     schedule.Daily,
		"investor_pipeline": schedule.Weekly,
		"board_prep":        schedule.Monthly,
		"pr_watch":          schedule.Other,
	}, buckets)

	// the template copy stays verbatim
	raw, _ := cfg.Template.Automations.Get("morning_brief")
	assert.Empty(t, raw.Category)
}

func TestAssembleDoesNotShareTemplateState(t *testing.T) {
	tmpl := decodeTemplate(t, templateYAML)
	lookup := mapLookup{"founder": tmpl}
	cfg, err := Assemble(Answers{UserType: "founder"}, lookup)
	require.NoError(t, err)
	spec, _ := cfg.Template.Automations.Get("morning_brief")
	spec.Includes[0] = "mutated"
	original, _ := tmpl.Automations.Get("morning_brief")
	assert.Equal(t, "calendar_review", original.Includes[0])
}

func TestAssembleTemplateNotFound(t *testing.T) {
	_, err := Assemble(Answers{UserType: "astronaut"}, mapLookup{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	_, err = Assemble(Answers{UserType: "founder"}, nil)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Morning Brief", DisplayName("morning_brief"))
	assert.Equal(t, "Code Review", DisplayName("code-review"))
	assert.Equal(t, "Été Digest", DisplayName("été_digest"))
	assert.True(t, utf8.ValidString(DisplayName("ñandú-watch")))
	assert.Equal(t, "email triage", Humanize("email_triage"))
}

func TestParseAnswersYAML(t *testing.T) {
	answers, err := ParseAnswersYAML([]byte("user_type: engineer\ngoals: [ship]\ntools: [github]\n"))
	require.NoError(t, err)
	assert.Equal(t, "engineer", answers.UserType)
	assert.Equal(t, []string{"github"}, answers.Tools)
	_, err = ParseAnswersYAML([]byte("   "))
	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b "))
}
