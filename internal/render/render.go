// Package render turns a Configuration into the workspace documents. Every
// function here is pure: output depends only on the Configuration and the
// render time passed in Options, so identical inputs give byte-identical
// documents.
package render

import (
	"time"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/skills"
)

// Options controls optional output.
type Options struct {
	// Now dates the morning brief. The zero value uses cfg.Created.
	Now time.Time
	// MaterializeSkills adds skills/<slug>/SKILL.md and package.json.
	MaterializeSkills bool
}

// Render produces every document for cfg in write order.
func Render(cfg profile.Configuration, opts Options) ([]artifact.Document, error) {
	now := opts.Now
	if now.IsZero() {
		now = cfg.Created
	}

	var docs []artifact.Document
	config, err := clawdbotConfig(cfg)
	if err != nil {
		return nil, err
	}
	docs = append(docs, config)

	automations, err := automationDocs(cfg)
	if err != nil {
		return nil, err
	}
	docs = append(docs, automations...)

	docs = append(docs,
		agents(cfg),
		heartbeat(cfg),
		readme(cfg),
		morningBrief(cfg, now),
	)

	example, err := exampleTemplateDoc(cfg)
	if err != nil {
		return nil, err
	}
	skillsConfig, err := skillsConfigDoc(cfg)
	if err != nil {
		return nil, err
	}
	docs = append(docs, example, skillsConfig)

	if opts.MaterializeSkills {
		for _, skill := range cfg.Workspace.Skills.Items {
			scaffold, err := skills.Scaffold(skill, cfg.Workspace.Name)
			if err != nil {
				return nil, err
			}
			docs = append(docs, scaffold...)
		}
	}
	return docs, nil
}

// Paths lists the relative paths of docs.
func Paths(docs []artifact.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Path)
	}
	return out
}
