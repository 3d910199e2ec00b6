package profile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Answers are the raw interview responses.
type Answers struct {
	UserType             string   `yaml:"user_type"`
	Goals                []string `yaml:"goals,omitempty"`
	Experience           string   `yaml:"experience,omitempty"`
	Tools                []string `yaml:"tools,omitempty"`
	WorkspaceName        string   `yaml:"workspace_name,omitempty"`
	WorkspaceDescription string   `yaml:"workspace_description,omitempty"`
}

// ParseAnswersYAML decodes an answers payload.
func ParseAnswersYAML(data []byte) (Answers, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Answers{}, fmt.Errorf("profile: answers payload is empty")
	}
	var answers Answers
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return Answers{}, fmt.Errorf("profile: decode answers: %w", err)
	}
	return answers, nil
}

// LoadAnswersFile reads an answers YAML file from disk.
func LoadAnswersFile(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Answers{}, fmt.Errorf("profile: read %s: %w", path, err)
	}
	answers, err := ParseAnswersYAML(data)
	if err != nil {
		return Answers{}, fmt.Errorf("profile: %s: %w", path, err)
	}
	return answers, nil
}

// SplitList splits a comma separated answer ("ship v1, hire") into trimmed
// non-empty entries.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// NormalizeRole lower-cases and trims a user type so it can be used as a
// catalog key.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
