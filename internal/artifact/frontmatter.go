package artifact

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("artifact: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block could not be parsed.
	ErrMalformedFrontMatter = errors.New("artifact: malformed frontmatter")
)

// ParseFrontMatter decodes the `---` fenced YAML block at the top of content
// into out and returns the remaining body.
func ParseFrontMatter(content []byte, out any) ([]byte, error) {
	if len(content) == 0 {
		return nil, ErrMissingFrontMatter
	}
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, ErrMissingFrontMatter
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return nil, ErrMalformedFrontMatter
	}
	if err := yaml.Unmarshal(parts[0], out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	return bytes.TrimLeft(parts[1], "\n"), nil
}

// WriteFrontMatter renders meta as a fenced YAML block followed by body.
func WriteFrontMatter(meta any, body []byte) ([]byte, error) {
	if meta == nil {
		return nil, fmt.Errorf("artifact: frontmatter metadata is nil")
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
