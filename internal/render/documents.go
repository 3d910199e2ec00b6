package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/roles"
	"github.com/kingrea/clawd-onboard/internal/schedule"
)

// Placeholders substituted for absent optional fields.
const (
	PlaceholderDescription = "General automation"
	PlaceholderPending     = "Setup pending"
	PlaceholderGoals       = "No goals recorded yet"
	PlaceholderNone        = "None configured"
)

// BriefDateLayout formats the date heading of morning-brief.md.
const BriefDateLayout = "Monday, January 2, 2006"

var operatingPrinciples = Bullets{
	"Ask before sending, deleting or publishing anything on the user's behalf.",
	"Prefer short summaries with links over long reports.",
	"Surface blockers early instead of waiting for the next scheduled run.",
	"Keep private data inside the workspace.",
	"When unsure what the user wants, propose an option and wait.",
}

var alertThresholds = Fields{
	{Label: "Urgent email", Value: "notify immediately when a message is flagged urgent or comes from a VIP contact"},
	{Label: "Calendar conflict", Value: "notify as soon as two events overlap"},
	{Label: "Missed automation", Value: "notify when a scheduled automation has not run for 24 hours"},
	{Label: "Failed integration", Value: "notify after three consecutive connection failures"},
}

var proactiveMonitoring = Bullets{
	"Watch for urgent messages between scheduled runs.",
	"Flag meetings without an agenda one hour before they start.",
	"Note automations that produced no output and suggest removing them.",
}

var successMetrics = Bullets{
	"Time saved per week compared with the impact estimate.",
	"Automations that ran on schedule.",
	"Follow-ups closed without a reminder from the user.",
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func humanized(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, profile.Humanize(v))
	}
	return out
}

func readme(cfg profile.Configuration) artifact.Document {
	var md Markdown
	md.Add(
		Heading{Level: 1, Text: cfg.Workspace.Name + " Workspace"},
		Paragraph(cfg.Workspace.Description),
		Heading{Level: 2, Text: "Setup Summary"},
		Fields{
			{Label: "User type", Value: cfg.User.Type},
			{Label: "Template", Value: cfg.Template.Name},
			{Label: "Experience", Value: cfg.User.Experience},
			{Label: "Created", Value: cfg.CreatedISO()},
			{Label: "Integrations", Value: joinOr(cfg.Integrations.Keys(), PlaceholderNone)},
			{Label: "Skills", Value: joinOr(cfg.Workspace.Skills.Names(), PlaceholderNone)},
		},
		Heading{Level: 2, Text: "Getting Started"},
		Numbered{
			"Read `AGENTS.md` to see how the assistant will work for you.",
			"Check `HEARTBEAT.md` for the daily, weekly and monthly routine.",
			"Open `morning-brief.md` for a sample briefing.",
			"Connect integrations in `config/clawdbot.yaml`.",
			"Start the runtime with `clawdbot start`.",
		},
		Heading{Level: 2, Text: "Automations"},
	)
	if cfg.Template.Automations.Len() == 0 {
		md.Add(Paragraph(PlaceholderNone))
	}
	cfg.Template.Automations.Each(func(name string, spec profile.AutomationSpec) {
		md.Add(
			Heading{Level: 3, Text: profile.DisplayName(name)},
			Paragraph(orDefault(spec.Description, PlaceholderDescription)),
			Fields{
				{Label: "Schedule", Value: orDefault(spec.Schedule, PlaceholderPending)},
				{Label: "Includes", Value: joinOr(humanized(spec.Includes), PlaceholderPending)},
			},
		)
	})
	md.Add(Heading{Level: 2, Text: "Your Goals"})
	if len(cfg.User.Goals) == 0 {
		md.Add(Paragraph(PlaceholderGoals))
	} else {
		md.Add(Bullets(cfg.User.Goals))
	}
	md.Add(
		Heading{Level: 2, Text: "Support"},
		Bullets{
			"Runtime help: `clawdbot help`",
			"Workspace status: `clawd-onboard status`",
			"Setup history: `logs/setup-history.log`",
			"Regenerate files: `clawd-onboard init`",
		},
	)
	return artifact.NewDocument(artifact.ReadmeDoc, "", md.Bytes())
}

func agents(cfg profile.Configuration) artifact.Document {
	tmpl := cfg.Template
	contract := roles.ContractForRole(cfg.User.Type)
	var md Markdown
	md.Add(
		Heading{Level: 1, Text: "AGENTS.md - " + tmpl.Name},
		Paragraph(tmpl.Description),
		Heading{Level: 2, Text: "Role"},
		Fields{
			{Label: "User type", Value: cfg.User.Type},
			{Label: "Focus", Value: contract.Label},
			{Label: "Experience", Value: cfg.User.Experience},
		},
		Heading{Level: 2, Text: "Automations"},
	)
	if cfg.Workspace.Automations.Len() == 0 {
		md.Add(Paragraph(PlaceholderNone))
	}
	cfg.Workspace.Automations.Each(func(name string, spec profile.AutomationSpec) {
		fields := Fields{
			{Label: "Schedule", Value: orDefault(spec.Schedule, PlaceholderPending)},
			{Label: "Priority", Value: spec.PriorityOrDefault()},
			{Label: "Cadence", Value: spec.Bucket().String()},
		}
		md.Add(
			Heading{Level: 3, Text: profile.DisplayName(name)},
			Paragraph(orDefault(spec.Description, PlaceholderDescription)),
			fields,
			Bullets(humanized(spec.Includes)),
		)
	})

	if len(tmpl.DemoScenarios) > 0 {
		md.Add(Heading{Level: 2, Text: "Demo Scenarios"})
		for _, demo := range tmpl.DemoScenarios {
			md.Add(
				Heading{Level: 3, Text: demo.Name},
				Paragraph(demo.Description),
				Fields{{Label: "Time saved", Value: orDefault(demo.TimeSaved, PlaceholderPending)}},
			)
		}
	}

	if m := tmpl.ImpactMetrics; m != nil {
		md.Add(
			Heading{Level: 2, Text: "Impact Metrics"},
			Fields{
				{Label: "Daily time saved", Value: orDefault(m.DailyTimeSaved, PlaceholderPending)},
				{Label: "Weekly time saved", Value: orDefault(m.WeeklyTimeSaved, PlaceholderPending)},
				{Label: "Monthly time saved", Value: orDefault(m.MonthlyTimeSaved, PlaceholderPending)},
			},
		)
		if len(m.PrimaryBenefits) > 0 {
			md.Add(Heading{Level: 3, Text: "Primary Benefits"}, Bullets(m.PrimaryBenefits))
		}
	}

	md.Add(Heading{Level: 2, Text: "Skills"})
	md.Add(skillsSection(cfg.Workspace.Skills)...)

	md.Add(
		Heading{Level: 2, Text: "Operating Principles"},
		operatingPrinciples,
		Heading{Level: 2, Text: "Alert Thresholds"},
		alertThresholds,
	)
	return artifact.NewDocument(artifact.AgentsDoc, "", md.Bytes())
}

func skillsSection(set profile.SkillSet) []Section {
	if set.Len() == 0 {
		return []Section{Paragraph(PlaceholderNone)}
	}
	if set.Form == profile.SkillFormList {
		return []Section{
			Paragraph("Skills enabled for this workspace:"),
			Bullets(set.Names()),
		}
	}
	items := make(Bullets, 0, set.Len())
	for _, skill := range set.Items {
		state := "enabled"
		if !skill.Spec.Enabled {
			state = "disabled"
		}
		line := fmt.Sprintf("**%s** (%s)", skill.Name, state)
		if skill.Spec.Description != "" {
			line += ": " + skill.Spec.Description
		}
		items = append(items, line)
	}
	return []Section{
		Paragraph("Skills configured for this workspace:"),
		items,
	}
}

var bucketVerbs = map[schedule.Category]string{
	schedule.Daily:   "Check and report on",
	schedule.Weekly:  "Analyze and summarize",
	schedule.Monthly: "Deep analysis of",
}

// heartbeat buckets automations by cadence. Automations classified as other
// do not appear in any section.
func heartbeat(cfg profile.Configuration) artifact.Document {
	var md Markdown
	md.Add(
		Heading{Level: 1, Text: "HEARTBEAT.md"},
		Paragraph(fmt.Sprintf("Recurring checks for the %s workspace (%s).", cfg.Workspace.Name, cfg.User.Type)),
	)
	for _, bucket := range schedule.Periodic {
		md.Add(Heading{Level: 2, Text: bucket.Title() + " Tasks"})
		verb := bucketVerbs[bucket]
		found := 0
		cfg.Workspace.Automations.Each(func(name string, spec profile.AutomationSpec) {
			if spec.Bucket() != bucket {
				return
			}
			found++
			tasks := make(Bullets, 0, len(spec.Includes))
			for _, include := range spec.Includes {
				tasks = append(tasks, verb+" "+profile.Humanize(include))
			}
			if len(tasks) == 0 {
				tasks = append(tasks, verb+" "+profile.Humanize(name))
			}
			md.Add(
				Heading{Level: 3, Text: fmt.Sprintf("%s (%s)", profile.DisplayName(name), orDefault(spec.Schedule, PlaceholderPending))},
				tasks,
			)
		})
		if found == 0 {
			md.Add(Paragraph(fmt.Sprintf("No %s automations configured.", bucket)))
		}
	}
	md.Add(
		Heading{Level: 2, Text: "Proactive Monitoring"},
		proactiveMonitoring,
		Heading{Level: 2, Text: "Success Metrics"},
		successMetrics,
	)
	return artifact.NewDocument(artifact.HeartbeatDoc, "", md.Bytes())
}

func morningBrief(cfg profile.Configuration, now time.Time) artifact.Document {
	contract := roles.ContractForRole(cfg.User.Type)
	var md Markdown
	md.Add(
		Heading{Level: 1, Text: "Morning Brief - " + now.Format(BriefDateLayout)},
		Paragraph(fmt.Sprintf("Good morning. Here is today's briefing for the %s workspace.", cfg.Workspace.Name)),
		Heading{Level: 2, Text: "Today's Goals"},
	)
	if len(cfg.User.Goals) == 0 {
		md.Add(Bullets{PlaceholderGoals})
	} else {
		md.Add(Bullets(cfg.User.Goals))
	}
	md.Add(
		Heading{Level: 2, Text: "Key Metrics"},
		Bullets(contract.Metrics),
		Heading{Level: 2, Text: "Notifications"},
		Fields{
			{Label: "Pending integrations", Value: joinOr(cfg.Integrations.Keys(), PlaceholderNone)},
			{Label: "Automations scheduled", Value: fmt.Sprintf("%d", cfg.Workspace.Automations.Len())},
		},
	)
	return artifact.NewDocument(artifact.MorningBriefDoc, "", md.Bytes())
}
