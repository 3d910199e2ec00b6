package render

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/roles"
)

type workspaceBlock struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Created     string `yaml:"created"`
	UserType    string `yaml:"user_type"`
}

type skillEntry struct {
	Name        string `yaml:"name"`
	Enabled     bool   `yaml:"enabled"`
	AutoInstall bool   `yaml:"auto_install"`
}

type clawdbotFile struct {
	Workspace    workspaceBlock       `yaml:"workspace"`
	Skills       []skillEntry         `yaml:"skills"`
	Integrations profile.Integrations `yaml:"integrations"`
	Automations  profile.Automations  `yaml:"automations"`
	Workflows    []profile.Workflow   `yaml:"workflows,omitempty"`
}

func clawdbotConfig(cfg profile.Configuration) (artifact.Document, error) {
	file := clawdbotFile{
		Workspace: workspaceBlock{
			Name:        cfg.Workspace.Name,
			Description: cfg.Workspace.Description,
			Created:     cfg.CreatedISO(),
			UserType:    cfg.User.Type,
		},
		Skills:       []skillEntry{},
		Integrations: cfg.Integrations,
		Automations:  cfg.Template.Automations,
		Workflows:    cfg.Template.Workflows,
	}
	for _, skill := range cfg.Workspace.Skills.Items {
		file.Skills = append(file.Skills, skillEntry{Name: skill.Name, Enabled: skill.Spec.Enabled, AutoInstall: true})
	}
	data, err := encodeYAML(file)
	if err != nil {
		return artifact.Document{}, err
	}
	return artifact.NewDocument(artifact.ClawdbotConfig, "", data), nil
}

// templateSchedule returns the schedule of the first template automation
// found under keys.
func templateSchedule(cfg profile.Configuration, keys []string) string {
	for _, key := range keys {
		if spec, ok := cfg.Template.Automations.Get(key); ok {
			return spec.Schedule
		}
	}
	return ""
}

func automationDocs(cfg profile.Configuration) ([]artifact.Document, error) {
	brief := roles.MorningBrief(templateSchedule(cfg, roles.MorningBriefKeys), cfg.Integrations.Keys())
	data, err := encodeYAML(brief)
	if err != nil {
		return nil, err
	}
	docs := []artifact.Document{artifact.NewDocument(artifact.MorningBriefAutomation, "", data)}

	contract := roles.ContractForRole(cfg.User.Type)
	if !contract.HasExtra() {
		return docs, nil
	}
	ref, ok := artifact.Lookup(contract.Extra.Name + "-automation")
	if !ok {
		return docs, nil
	}
	def := contract.Extra.Definition(templateSchedule(cfg, contract.Extra.TemplateKeys))
	data, err = encodeYAML(def)
	if err != nil {
		return nil, err
	}
	return append(docs, artifact.NewDocument(ref, "", data)), nil
}

type usage struct {
	Instructions []string `json:"instructions"`
}

type exampleTemplate struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	UserType      string                 `json:"user_type"`
	Automations   profile.Automations    `json:"automations"`
	Skills        []string               `json:"skills"`
	DemoScenarios []profile.DemoScenario `json:"demo_scenarios"`
	ImpactMetrics *profile.ImpactMetrics `json:"impact_metrics,omitempty"`
	Workflows     []profile.Workflow     `json:"workflows,omitempty"`
	Usage         usage                  `json:"usage"`
}

func exampleTemplateDoc(cfg profile.Configuration) (artifact.Document, error) {
	tmpl := cfg.Template
	out := exampleTemplate{
		Name:          tmpl.Name,
		Description:   tmpl.Description,
		UserType:      cfg.User.Type,
		Automations:   tmpl.Automations,
		Skills:        append([]string{}, tmpl.Skills.Names()...),
		DemoScenarios: append([]profile.DemoScenario{}, tmpl.DemoScenarios...),
		ImpactMetrics: tmpl.ImpactMetrics,
		Workflows:     tmpl.Workflows,
		Usage: usage{Instructions: []string{
			"Copy this file and edit the automations to match your routine.",
			"Save it as <role>.yaml in your templates directory to override the built-in template.",
			"Re-run clawd-onboard init to regenerate the workspace.",
		}},
	}
	data, err := encodeJSON(out)
	if err != nil {
		return artifact.Document{}, err
	}
	return artifact.NewDocument(artifact.ExampleTemplate, cfg.User.Type, data), nil
}

// skillsConfigDoc renders the runtime's skills snippet. Every skill starts as
// enabled and then receives its overrides in declaration order.
func skillsConfigDoc(cfg profile.Configuration) (artifact.Document, error) {
	entries := orderedmap.New[string, *orderedmap.OrderedMap[string, any]]()
	for _, skill := range cfg.Workspace.Skills.Items {
		entry := orderedmap.New[string, any]()
		entry.Set("enabled", true)
		for _, field := range skill.Spec.Overrides {
			entry.Set(field.Key, field.Value)
		}
		entries.Set(skill.Name, entry)
	}
	payload := map[string]any{
		"skills": map[string]any{"entries": entries},
	}
	data, err := encodeJSON(payload)
	if err != nil {
		return artifact.Document{}, err
	}
	return artifact.NewDocument(artifact.SkillsConfig, "", data), nil
}
