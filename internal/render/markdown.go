package render

import (
	"fmt"
	"strings"
)

// Section is one block of a Markdown document.
type Section interface {
	markdown(b *strings.Builder)
}

// Heading is an ATX heading. Level 0 is treated as 1.
type Heading struct {
	Level int
	Text  string
}

func (h Heading) markdown(b *strings.Builder) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	b.WriteString(strings.Repeat("#", level))
	b.WriteByte(' ')
	b.WriteString(h.Text)
	b.WriteByte('\n')
}

// Paragraph is free text. Empty paragraphs are skipped.
type Paragraph string

func (p Paragraph) markdown(b *strings.Builder) {
	b.WriteString(strings.TrimSpace(string(p)))
	b.WriteByte('\n')
}

// Bullets is an unordered list.
type Bullets []string

func (l Bullets) markdown(b *strings.Builder) {
	for _, item := range l {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteByte('\n')
	}
}

// Numbered is an ordered list.
type Numbered []string

func (l Numbered) markdown(b *strings.Builder) {
	for i, item := range l {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

// Field is a bold label followed by a value.
type Field struct {
	Label string
	Value string
}

// Fields renders labelled values as a list.
type Fields []Field

func (f Fields) markdown(b *strings.Builder) {
	for _, field := range f {
		fmt.Fprintf(b, "- **%s:** %s\n", field.Label, field.Value)
	}
}

// Rule is a horizontal rule.
type Rule struct{}

func (Rule) markdown(b *strings.Builder) { b.WriteString("---\n") }

// Markdown is an ordered list of sections.
type Markdown struct {
	sections []Section
}

// Add appends sections, dropping empty ones.
func (m *Markdown) Add(sections ...Section) *Markdown {
	for _, s := range sections {
		if empty(s) {
			continue
		}
		m.sections = append(m.sections, s)
	}
	return m
}

// Len returns the number of sections.
func (m *Markdown) Len() int { return len(m.sections) }

// String serializes the document. Sections are separated by one blank line
// and the output ends with a single newline.
func (m *Markdown) String() string {
	var b strings.Builder
	for i, s := range m.sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		s.markdown(&b)
	}
	return b.String()
}

// Bytes is String as a byte slice.
func (m *Markdown) Bytes() []byte { return []byte(m.String()) }

func empty(s Section) bool {
	switch v := s.(type) {
	case nil:
		return true
	case Paragraph:
		return strings.TrimSpace(string(v)) == ""
	case Bullets:
		return len(v) == 0
	case Numbered:
		return len(v) == 0
	case Fields:
		return len(v) == 0
	}
	return false
}
