// Package skills builds the per-skill scaffold files the runtime loads from
// skills/<slug>/: a SKILL.md description with frontmatter and a package.json
// manifest.
package skills

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/kingrea/clawd-onboard/internal/artifact"
	"github.com/kingrea/clawd-onboard/internal/profile"
)

// ManifestVersion is the version written to every generated package.json.
const ManifestVersion = "1.0.0"

//go:embed library/*.md
var bundled embed.FS

// Meta is the SKILL.md frontmatter.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Enabled     bool   `yaml:"enabled"`
}

// Manifest mirrors the package manifest the runtime's skill loader expects.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Main        string   `json:"main"`
	Keywords    []string `json:"keywords"`
	Author      string   `json:"author"`
	License     string   `json:"license"`
}

// Slug turns a skill name into its directory name.
func Slug(name string) string { return artifact.Slug(name) }

// Description returns the declared description or a generated one.
func Description(skill profile.Skill) string {
	if d := strings.TrimSpace(skill.Spec.Description); d != "" {
		return d
	}
	return fmt.Sprintf("%s capabilities for the assistant.", profile.DisplayName(skill.Name))
}

// Scaffold renders SKILL.md and package.json for skill.
func Scaffold(skill profile.Skill, author string) ([]artifact.Document, error) {
	name := strings.TrimSpace(skill.Name)
	if name == "" {
		return nil, fmt.Errorf("skills: skill name is empty")
	}
	slug := Slug(name)
	description := Description(skill)

	body, err := body(slug, name, description)
	if err != nil {
		return nil, err
	}
	doc, err := artifact.WriteFrontMatter(Meta{Name: name, Description: description, Enabled: skill.Spec.Enabled}, body)
	if err != nil {
		return nil, fmt.Errorf("skills: %s: %w", name, err)
	}

	manifest := Manifest{
		Name:        slug,
		Version:     ManifestVersion,
		Description: description,
		Main:        "index.js",
		Keywords:    []string{"clawdbot", "skill", slug},
		Author:      author,
		License:     "MIT",
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("skills: %s manifest: %w", name, err)
	}

	return []artifact.Document{
		artifact.NewDocument(artifact.SkillDoc, name, doc),
		artifact.NewDocument(artifact.SkillManifest, name, buf.Bytes()),
	}, nil
}

// Bundled reports whether a dedicated body exists for slug.
func Bundled(slug string) bool {
	_, err := bundled.ReadFile(path.Join("library", slug+".md"))
	return err == nil
}

func body(slug, name, description string) ([]byte, error) {
	data, err := bundled.ReadFile(path.Join("library", slug+".md"))
	if err != nil {
		data, err = bundled.ReadFile("library/default.md")
		if err != nil {
			return nil, fmt.Errorf("skills: read embedded body: %w", err)
		}
	}
	r := strings.NewReplacer(
		"{{title}}", profile.DisplayName(name),
		"{{name}}", name,
		"{{description}}", description,
	)
	return []byte(r.Replace(string(data))), nil
}
