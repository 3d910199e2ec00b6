// Package catalog supplies role templates keyed by user type. Built-in
// templates are embedded; additional or replacement templates can be loaded
// from a directory of YAML files named after the role they serve.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/clawd-onboard/internal/profile"
	"github.com/kingrea/clawd-onboard/internal/schedule"
)

// ErrTemplateNotFound is returned by Lookup for unknown roles.
var ErrTemplateNotFound = profile.ErrTemplateNotFound

//go:embed templates/*.yaml
var builtin embed.FS

// Entry pairs a template with where it was loaded from.
type Entry struct {
	Role     string
	Template profile.Template
	Source   string
}

// Catalog is a role -> template lookup.
type Catalog struct {
	entries map[string]Entry
}

// Builtin returns a catalog holding only the embedded templates.
func Builtin() (*Catalog, error) {
	c := &Catalog{entries: map[string]Entry{}}
	files, err := fs.Glob(builtin, "templates/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: list builtin templates: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		data, err := builtin.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", file, err)
		}
		tmpl, err := ParseTemplateYAML(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", file, err)
		}
		c.add(roleFromFile(path.Base(file)), tmpl, "builtin:"+file)
	}
	return c, nil
}

// Load returns the builtin catalog overlaid with templates from dir. An empty
// or missing dir yields just the builtins.
func Load(dir string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	if err := c.LoadDir(dir); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the template for role.
func (c *Catalog) Lookup(role string) (profile.Template, error) {
	key := profile.NormalizeRole(role)
	if c != nil {
		if entry, ok := c.entries[key]; ok {
			return entry.Template.Clone(), nil
		}
	}
	if key == "" {
		return profile.Template{}, fmt.Errorf("%w: user type is empty", ErrTemplateNotFound)
	}
	return profile.Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
}

// Entry returns the catalog entry for role.
func (c *Catalog) Entry(role string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.entries[profile.NormalizeRole(role)]
	return entry, ok
}

// Describe returns a one-line summary of the template for role.
func (c *Catalog) Describe(role string) (string, bool) {
	entry, ok := c.Entry(role)
	if !ok {
		return "", false
	}
	summary := entry.Template.Name
	if d := strings.TrimSpace(entry.Template.Description); d != "" {
		summary += ": " + d
	}
	return summary, true
}

// Roles lists known roles alphabetically.
func (c *Catalog) Roles() []string {
	if c == nil {
		return nil
	}
	roles := make([]string, 0, len(c.entries))
	for role := range c.entries {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// LoadDir scans dir for *.yaml / *.yml templates. The file stem is the role,
// so templates/founder.yaml replaces the builtin founder template.
func (c *Catalog) LoadDir(dir string) error {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("catalog: read %s: %w", trimmed, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(trimmed, entry.Name()))
	}
	sort.Strings(paths)
	for _, p := range paths {
		tmpl, err := LoadTemplateFile(p)
		if err != nil {
			return err
		}
		c.add(roleFromFile(filepath.Base(p)), tmpl, filepath.Clean(p))
	}
	return nil
}

// LoadTemplateFile reads and validates one template file.
func LoadTemplateFile(p string) (profile.Template, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return profile.Template{}, fmt.Errorf("catalog: read %s: %w", p, err)
	}
	tmpl, err := ParseTemplateYAML(data)
	if err != nil {
		return profile.Template{}, fmt.Errorf("catalog: %s: %w", p, err)
	}
	return tmpl, nil
}

// ParseTemplateYAML decodes and validates a template payload.
func ParseTemplateYAML(data []byte) (profile.Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return profile.Template{}, fmt.Errorf("template payload is empty")
	}
	var tmpl profile.Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return profile.Template{}, fmt.Errorf("decode template: %w", err)
	}
	if err := validate(tmpl); err != nil {
		return profile.Template{}, err
	}
	return tmpl, nil
}

func validate(tmpl profile.Template) error {
	if strings.TrimSpace(tmpl.Name) == "" {
		return fmt.Errorf("template name is required")
	}
	var err error
	tmpl.Automations.Each(func(name string, spec profile.AutomationSpec) {
		if err != nil {
			return
		}
		if strings.TrimSpace(name) == "" {
			err = fmt.Errorf("automation name is required")
			return
		}
		if _, parseErr := schedule.ParseCategory(string(spec.Category)); parseErr != nil {
			err = fmt.Errorf("automation %s: %w", name, parseErr)
		}
	})
	return err
}

func (c *Catalog) add(role string, tmpl profile.Template, source string) {
	c.entries[role] = Entry{Role: role, Template: tmpl, Source: source}
}

func roleFromFile(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return profile.NormalizeRole(stem)
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
