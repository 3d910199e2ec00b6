package profile

// DemoScenario is a short example of the assistant saving the user time.
type DemoScenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	TimeSaved   string `yaml:"time_saved" json:"time_saved"`
}

// ImpactMetrics summarizes the expected time savings of a template.
type ImpactMetrics struct {
	DailyTimeSaved   string   `yaml:"daily_time_saved,omitempty" json:"daily_time_saved,omitempty"`
	WeeklyTimeSaved  string   `yaml:"weekly_time_saved,omitempty" json:"weekly_time_saved,omitempty"`
	MonthlyTimeSaved string   `yaml:"monthly_time_saved,omitempty" json:"monthly_time_saved,omitempty"`
	PrimaryBenefits  []string `yaml:"primary_benefits,omitempty" json:"primary_benefits,omitempty"`
}

// Workflow is an optional multi-step routine copied into clawdbot.yaml.
type Workflow struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Trigger     string   `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	Steps       []string `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Template is a role-specific bundle of automations, skills and descriptive
// content.
type Template struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Automations   Automations    `yaml:"automations"`
	Skills        SkillSet       `yaml:"skills"`
	DemoScenarios []DemoScenario `yaml:"demo_scenarios"`
	ImpactMetrics *ImpactMetrics `yaml:"impact_metrics"`
	Workflows     []Workflow     `yaml:"workflows"`
}

// Clone deep-copies the template.
func (t Template) Clone() Template {
	clone := t
	clone.Automations = t.Automations.Clone(AutomationSpec.clone)
	clone.Skills = t.Skills.Clone()
	if t.DemoScenarios != nil {
		clone.DemoScenarios = append([]DemoScenario(nil), t.DemoScenarios...)
	}
	if t.ImpactMetrics != nil {
		metrics := *t.ImpactMetrics
		metrics.PrimaryBenefits = append([]string(nil), t.ImpactMetrics.PrimaryBenefits...)
		clone.ImpactMetrics = &metrics
	}
	if t.Workflows != nil {
		clone.Workflows = make([]Workflow, len(t.Workflows))
		for i, wf := range t.Workflows {
			wf.Steps = append([]string(nil), wf.Steps...)
			clone.Workflows[i] = wf
		}
	}
	return clone
}
