// Package roles holds the per-user-type branches of artifact generation:
// the morning-brief metric placeholders and the one extra automation a role
// receives. Unknown user types get the fallback contract, which adds no
// automation.
package roles

// Known user types with dedicated branches.
const (
	Founder  = "founder"
	Engineer = "engineer"
)

// Contract describes what a user type adds on top of its template.
type Contract struct {
	Role    string
	Label   string
	Metrics []string
	Extra   *Extra
}

// HasExtra reports whether the role generates an additional automation.
func (c Contract) HasExtra() bool { return c.Extra != nil }

var fallbackMetrics = []string{
	"Tasks completed yesterday: [pending]",
	"Focus time scheduled today: [pending]",
	"Follow-ups awaiting reply: [pending]",
}

var contracts = map[string]Contract{
	Founder: {
		Role:  Founder,
		Label: "Founder",
		Metrics: []string{
			"Revenue (MTD): [connect analytics]",
			"Active users: [connect analytics]",
			"Runway: [pending] months",
			"Open investor conversations: [connect CRM]",
		},
		Extra: &Extra{
			Name:            "investor-update",
			Description:     "Monthly investor update draft",
			TemplateKeys:    []string{"investor_update", "investor-update"},
			DefaultSchedule: "Monthly first Monday 9:00 AM",
			Priority:        "high",
			Actions: []Action{
				{Type: "collect_metrics", Sources: []string{"revenue", "user_growth", "team_updates"}},
				{Type: "generate_report", Format: "markdown", Template: "investor-update"},
			},
		},
	},
	Engineer: {
		Role:  Engineer,
		Label: "Engineer",
		Metrics: []string{
			"Open pull requests: [connect GitHub]",
			"Reviews requested from you: [connect GitHub]",
			"Failing builds: [connect CI]",
			"Assigned issues: [connect GitHub]",
		},
		Extra: &Extra{
			Name:            "code-review",
			Description:     "Automated first-pass review of new pull requests",
			TemplateKeys:    []string{"code_review", "code-review"},
			DefaultSchedule: "On PR creation",
			Priority:        "high",
			Actions: []Action{
				{Type: "analyze_code", Checks: []string{"security", "performance", "style", "tests"}},
				{Type: "generate_feedback", Format: "inline_comments"},
			},
		},
	},
}

// ContractForRole returns the contract for userType, or the fallback
// contract when the type has no dedicated branch.
func ContractForRole(userType string) Contract {
	if contract, ok := contracts[userType]; ok {
		return contract
	}
	return Contract{Role: userType, Label: "Assistant", Metrics: fallbackMetrics}
}
