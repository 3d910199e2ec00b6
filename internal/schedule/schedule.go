// Package schedule buckets free-text automation schedules into the periodic
// sections of HEARTBEAT.md. Schedules are never parsed into a grammar; the
// classification is a substring heuristic and callers should treat it as one.
package schedule

import (
	"fmt"
	"strings"
)

// Category is the periodic bucket an automation belongs to.
type Category string

const (
	Daily   Category = "daily"
	Weekly  Category = "weekly"
	Monthly Category = "monthly"
	Other   Category = "other"
)

// Periodic lists the buckets rendered as heartbeat sections, in render order.
var Periodic = []Category{Daily, Weekly, Monthly}

// Classify maps a schedule string to a Category. Tokens are checked in
// priority order and the first match wins:
//
//	"daily"               lowercase only
//	"Weekly" / "weekly"
//	"Monthly" / "monthly"
//
// "Daily standup" therefore classifies as Other while "Weekly sync" is Weekly.
func Classify(s string) Category {
	switch {
	case strings.Contains(s, "daily"):
		return Daily
	case strings.Contains(s, "Weekly"), strings.Contains(s, "weekly"):
		return Weekly
	case strings.Contains(s, "Monthly"), strings.Contains(s, "monthly"):
		return Monthly
	default:
		return Other
	}
}

// ParseCategory decodes an explicit category value (case-insensitive).
// An empty value returns "" so callers can fall back to Classify.
func ParseCategory(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch Category(normalized) {
	case "":
		return "", nil
	case Daily, Weekly, Monthly, Other:
		return Category(normalized), nil
	default:
		return "", fmt.Errorf("schedule: unknown category %q", value)
	}
}

// Valid reports whether c is one of the known buckets.
func (c Category) Valid() bool {
	switch c {
	case Daily, Weekly, Monthly, Other:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// Title returns the section label used in rendered documents ("Daily").
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
