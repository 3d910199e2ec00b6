package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/clawd-onboard/internal/profile"
)

func TestBuiltinRoles(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{"creator", "engineer", "founder", "general"}, c.Roles())

	founder, err := c.Lookup("Founder")
	require.NoError(t, err)
	assert.Equal(t, "Founder Command Center", founder.Name)
	assert.Equal(t, profile.SkillFormList, founder.Skills.Form)
	assert.Equal(t, "morning_brief", founder.Automations.Keys()[0])

	engineer, err := c.Lookup("engineer")
	require.NoError(t, err)
	assert.Equal(t, profile.SkillFormMap, engineer.Skills.Form)
	assert.Equal(t, []string{"github", "calendar", "terminal"}, engineer.Skills.Names())

	general, err := c.Lookup("general")
	require.NoError(t, err)
	assert.Nil(t, general.ImpactMetrics)
	assert.Empty(t, general.DemoScenarios)
}

func TestLookupUnknownRole(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	_, err = c.Lookup("astronaut")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
	assert.Contains(t, err.Error(), "astronaut")

	var nilCatalog *Catalog
	_, err = nilCatalog.Lookup("founder")
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestLoadDirOverlaysTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Founder.yaml"), "name: Custom Founder\nskills: [email]\n")
	writeFile(t, filepath.Join(dir, "designer.yml"), "name: Design Desk\nautomations:\n  crit:\n    schedule: Weekly Tuesday\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	c, err := Load(dir)
	require.NoError(t, err)
	founder, err := c.Lookup("founder")
	require.NoError(t, err)
	assert.Equal(t, "Custom Founder", founder.Name)
	entry, ok := c.Entry("designer")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "designer.yml"), entry.Source)
	assert.Contains(t, c.Roles(), "designer")
}

func TestLoadDirMissingIsNotAnError(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Len(t, c.Roles(), 4)
}

func TestParseTemplateYAMLValidation(t *testing.T) {
	_, err := ParseTemplateYAML([]byte(""))
	assert.Error(t, err)
	_, err = ParseTemplateYAML([]byte("description: no name\n"))
	assert.ErrorContains(t, err, "name is required")
	_, err = ParseTemplateYAML([]byte("name: X\nautomations:\n  a:\n    schedule: daily\n    category: hourly\n"))
	assert.ErrorContains(t, err, "unknown category")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDescribe(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	summary, ok := c.Describe("general")
	require.True(t, ok)
	assert.Equal(t, "Personal Assistant: A general-purpose assistant for staying organized.", summary)
	_, ok = c.Describe("astronaut")
	assert.False(t, ok)
}
