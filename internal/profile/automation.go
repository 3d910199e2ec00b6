package profile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kingrea/clawd-onboard/internal/schedule"
)

// DefaultPriority is used when an automation does not declare one.
const DefaultPriority = "medium"

// AutomationSpec describes one scheduled unit of work. It is only described
// to the runtime, never executed here.
type AutomationSpec struct {
	Schedule    string            `yaml:"schedule" json:"schedule"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Priority    string            `yaml:"priority,omitempty" json:"priority,omitempty"`
	Includes    []string          `yaml:"includes,omitempty" json:"includes,omitempty"`
	Category    schedule.Category `yaml:"category,omitempty" json:"category,omitempty"`
}

// Automations maps automation names to specs in declaration order.
type Automations = Ordered[AutomationSpec]

// PriorityOrDefault returns the declared priority or DefaultPriority.
func (a AutomationSpec) PriorityOrDefault() string {
	if p := strings.TrimSpace(a.Priority); p != "" {
		return p
	}
	return DefaultPriority
}

// Bucket returns the heartbeat bucket. An explicit Category wins; otherwise
// the schedule string is classified heuristically.
func (a AutomationSpec) Bucket() schedule.Category {
	if a.Category.Valid() {
		return a.Category
	}
	return schedule.Classify(a.Schedule)
}

func (a AutomationSpec) clone() AutomationSpec {
	clone := a
	if a.Includes != nil {
		clone.Includes = append([]string(nil), a.Includes...)
	}
	return clone
}

// classified returns a copy where every automation has Category populated.
func classified(in Automations) Automations {
	return in.Clone(func(spec AutomationSpec) AutomationSpec {
		spec = spec.clone()
		if parsed, err := schedule.ParseCategory(string(spec.Category)); err == nil && parsed != "" {
			spec.Category = parsed
		} else {
			spec.Category = schedule.Classify(spec.Schedule)
		}
		return spec
	})
}

// DisplayName turns an automation or skill key into a title: "morning_brief"
// becomes "Morning Brief".
func DisplayName(key string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Humanize replaces underscores with spaces ("email_triage" -> "email triage").
func Humanize(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
}
