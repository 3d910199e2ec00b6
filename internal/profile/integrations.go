package profile

import "strings"

// IntegrationSpec is the fixed expansion of an integration toggle.
type IntegrationSpec struct {
	Provider  string   `yaml:"provider,omitempty" json:"provider,omitempty"`
	Platforms []string `yaml:"platforms,omitempty" json:"platforms,omitempty"`
	Features  []string `yaml:"features" json:"features"`
}

// Integrations maps integration keys to their expansion.
type Integrations = Ordered[IntegrationSpec]

// Integration keys recognized by ExpandIntegrations.
const (
	IntegrationEmail    = "email"
	IntegrationCalendar = "calendar"
	IntegrationGitHub   = "github"
	IntegrationSocial   = "social"
)

// KnownIntegrations lists the recognized keys in canonical render order.
var KnownIntegrations = []string{IntegrationEmail, IntegrationCalendar, IntegrationGitHub, IntegrationSocial}

func integrationSpec(key string) (IntegrationSpec, bool) {
	switch key {
	case IntegrationEmail:
		return IntegrationSpec{
			Provider: "gmail",
			Features: []string{"inbox_triage", "draft_replies", "follow_up_reminders"},
		}, true
	case IntegrationCalendar:
		return IntegrationSpec{
			Provider: "google_calendar",
			Features: []string{"schedule_review", "meeting_prep", "conflict_detection"},
		}, true
	case IntegrationGitHub:
		return IntegrationSpec{
			Provider: "github",
			Features: []string{"pr_reviews", "issue_tracking", "repo_analytics"},
		}, true
	case IntegrationSocial:
		return IntegrationSpec{
			Platforms: []string{"twitter", "linkedin"},
			Features:  []string{"content_scheduling", "engagement_tracking", "mention_alerts"},
		}, true
	}
	return IntegrationSpec{}, false
}

// ExpandIntegrations turns opaque tool identifiers into integration entries.
// Unrecognized identifiers are ignored. The result is in canonical order, so
// the toggle order does not affect rendered output.
func ExpandIntegrations(tools []string) Integrations {
	selected := map[string]bool{}
	for _, tool := range tools {
		selected[strings.ToLower(strings.TrimSpace(tool))] = true
	}
	var out Integrations
	for _, key := range KnownIntegrations {
		if !selected[key] {
			continue
		}
		spec, _ := integrationSpec(key)
		out.Set(key, spec)
	}
	return out
}
