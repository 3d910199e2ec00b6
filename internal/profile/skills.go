package profile

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/clawd-onboard/internal/artifact"
)

// SkillForm records which YAML shape a skill list was declared in.
type SkillForm string

const (
	// SkillFormList is a sequence of skill names.
	SkillFormList SkillForm = "list"
	// SkillFormMap is a mapping of skill name to SkillSpec.
	SkillFormMap SkillForm = "map"
)

// Field is one passthrough key/value pair kept in declaration order.
type Field struct {
	Key   string
	Value any
}

// SkillSpec holds the per-skill settings from the mapping form. Fields other
// than description are kept verbatim as Overrides so they can be merged into
// the runtime's skills configuration.
type SkillSpec struct {
	Enabled     bool
	Description string
	Overrides   []Field
}

// Skill pairs a skill name with its spec.
type Skill struct {
	Name string
	Spec SkillSpec
}

// SkillSet is the normalized skill list. Templates may declare skills either
// as a list of names or as a mapping; both decode into the same SkillSet so
// renderers never branch on shape except for presentation via Form.
type SkillSet struct {
	Form  SkillForm
	Items []Skill
}

// NewSkillList builds a list-form set with every skill enabled.
func NewSkillList(names ...string) SkillSet {
	set := SkillSet{Form: SkillFormList}
	for _, name := range names {
		_ = set.add(Skill{Name: name, Spec: SkillSpec{Enabled: true}})
	}
	return set
}

// Names returns skill names in declaration order.
func (s SkillSet) Names() []string {
	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Name)
	}
	return names
}

// Len returns the number of skills.
func (s SkillSet) Len() int { return len(s.Items) }

// Clone deep-copies the set.
func (s SkillSet) Clone() SkillSet {
	out := SkillSet{Form: s.Form}
	if s.Items == nil {
		return out
	}
	out.Items = make([]Skill, len(s.Items))
	for i, item := range s.Items {
		clone := item
		if item.Spec.Overrides != nil {
			clone.Spec.Overrides = append([]Field(nil), item.Spec.Overrides...)
		}
		out.Items[i] = clone
	}
	return out
}

// add appends skill unless its name is blank. Two skills may not share a
// name or the skills/<slug>/ folder their scaffold is written to.
func (s *SkillSet) add(skill Skill) error {
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return nil
	}
	slug := artifact.Slug(skill.Name)
	for _, existing := range s.Items {
		if existing.Name == skill.Name {
			return fmt.Errorf("skills: duplicate skill %q", skill.Name)
		}
		if artifact.Slug(existing.Name) == slug {
			return fmt.Errorf("skills: %q and %q both map to skills/%s", existing.Name, skill.Name, slug)
		}
	}
	s.Items = append(s.Items, skill)
	return nil
}

// UnmarshalYAML accepts:
//
//	skills: [email, calendar]
//	skills: [{name: email, enabled: false}]
//	skills: {email: {enabled: true}, calendar: {}}
//	skills: {entries: {email: {…}}}
//
// A mapping whose only key is "entries" is unwrapped, mirroring the runtime's
// own skills configuration layout, as long as every value under it is a
// mapping or null. Otherwise "entries" is read as the name of a skill.
func (s *SkillSet) UnmarshalYAML(node *yaml.Node) error {
	*s = SkillSet{}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if isNullNode(node) {
		return nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		s.Form = SkillFormList
		for _, item := range node.Content {
			skill, err := decodeListItem(item)
			if err != nil {
				return err
			}
			if err := s.add(skill); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		s.Form = SkillFormMap
		entries := node
		if isEntriesWrapper(node) {
			entries = node.Content[1]
		}
		for i := 0; i+1 < len(entries.Content); i += 2 {
			name := entries.Content[i].Value
			spec, err := decodeSkillSpec(entries.Content[i+1])
			if err != nil {
				return fmt.Errorf("skills: %s: %w", name, err)
			}
			if err := s.add(Skill{Name: name, Spec: spec}); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("skills: line %d: expected a list or a mapping", node.Line)
	}
}

func isEntriesWrapper(node *yaml.Node) bool {
	if len(node.Content) != 2 || node.Content[0].Value != "entries" || node.Content[1].Kind != yaml.MappingNode {
		return false
	}
	inner := node.Content[1].Content
	for i := 1; i < len(inner); i += 2 {
		if inner[i].Kind != yaml.MappingNode && !isNullNode(inner[i]) {
			return false
		}
	}
	return true
}

func decodeListItem(node *yaml.Node) (Skill, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Skill{Name: node.Value, Spec: SkillSpec{Enabled: true}}, nil
	case yaml.MappingNode:
		name := ""
		rest := &yaml.Node{Kind: yaml.MappingNode}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "name" {
				name = node.Content[i+1].Value
				continue
			}
			rest.Content = append(rest.Content, node.Content[i], node.Content[i+1])
		}
		if strings.TrimSpace(name) == "" {
			return Skill{}, fmt.Errorf("skills: line %d: list entry is missing a name", node.Line)
		}
		spec, err := decodeSkillSpec(rest)
		if err != nil {
			return Skill{}, fmt.Errorf("skills: %s: %w", name, err)
		}
		return Skill{Name: name, Spec: spec}, nil
	default:
		return Skill{}, fmt.Errorf("skills: line %d: unsupported list entry", node.Line)
	}
}

func decodeSkillSpec(node *yaml.Node) (SkillSpec, error) {
	spec := SkillSpec{Enabled: true}
	if isNullNode(node) {
		return spec, nil
	}
	if node.Kind == yaml.ScalarNode {
		// shorthand: `email: false`
		enabled, err := cast.ToBoolE(node.Value)
		if err != nil {
			return SkillSpec{}, fmt.Errorf("enabled: %w", err)
		}
		spec.Enabled = enabled
		spec.Overrides = []Field{{Key: "enabled", Value: enabled}}
		return spec, nil
	}
	if node.Kind != yaml.MappingNode {
		return SkillSpec{}, fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return SkillSpec{}, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "enabled":
			enabled, err := cast.ToBoolE(value)
			if err != nil {
				return SkillSpec{}, fmt.Errorf("enabled: %w", err)
			}
			spec.Enabled = enabled
			spec.Overrides = append(spec.Overrides, Field{Key: key, Value: enabled})
		case "description":
			spec.Description = strings.TrimSpace(cast.ToString(value))
		default:
			spec.Overrides = append(spec.Overrides, Field{Key: key, Value: jsonSafe(value)})
		}
	}
	return spec, nil
}

// jsonSafe rewrites map[any]any values produced by yaml.v3 into
// map[string]any so overrides can be encoded as JSON.
func jsonSafe(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[cast.ToString(key)] = jsonSafe(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = jsonSafe(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = jsonSafe(inner)
		}
		return out
	default:
		return v
	}
}
