package roles

// Action is one step of a generated automation definition.
type Action struct {
	Type     string   `yaml:"type"`
	Sources  []string `yaml:"sources,omitempty"`
	Checks   []string `yaml:"checks,omitempty"`
	Template string   `yaml:"template,omitempty"`
	Format   string   `yaml:"format,omitempty"`
	Channel  string   `yaml:"channel,omitempty"`
}

// Definition is the on-disk shape of automations/<name>.yaml.
type Definition struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Schedule    string   `yaml:"schedule"`
	Priority    string   `yaml:"priority"`
	Enabled     bool     `yaml:"enabled"`
	Actions     []Action `yaml:"actions"`
}

// Extra is a role-specific automation.
type Extra struct {
	Name            string
	Description     string
	TemplateKeys    []string
	DefaultSchedule string
	Priority        string
	Actions         []Action
}

// Definition builds the automation with the given schedule, or the default
// schedule when it is empty.
func (e Extra) Definition(schedule string) Definition {
	if schedule == "" {
		schedule = e.DefaultSchedule
	}
	actions := make([]Action, len(e.Actions))
	copy(actions, e.Actions)
	return Definition{
		Name:        e.Name,
		Description: e.Description,
		Schedule:    schedule,
		Priority:    e.Priority,
		Enabled:     true,
		Actions:     actions,
	}
}

// Morning brief defaults.
const (
	MorningBriefName            = "morning-brief"
	MorningBriefDefaultSchedule = "8:00 AM daily"
)

// MorningBriefKeys are the template automation names whose schedule the
// morning brief reuses.
var MorningBriefKeys = []string{"morning_brief", "morning-brief"}

// MorningBrief builds the always-present morning brief automation. sources
// are the configured integration keys.
func MorningBrief(schedule string, sources []string) Definition {
	if schedule == "" {
		schedule = MorningBriefDefaultSchedule
	}
	return Definition{
		Name:        MorningBriefName,
		Description: "Daily morning briefing",
		Schedule:    schedule,
		Priority:    "high",
		Enabled:     true,
		Actions: []Action{
			{Type: "collect_data", Sources: append([]string{}, sources...)},
			{Type: "generate_summary", Template: "morning-brief.md"},
			{Type: "notify", Channel: "default"},
		},
	}
}
