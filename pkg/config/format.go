package config

import (
	"fmt"
	"strings"
)

// IsValid reports whether f is a known report format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a report format name, case-insensitively.
// An empty string selects FormatText.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if strings.TrimSpace(s) == "" {
		return FormatText, nil
	}
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format %q; must be one of: text, table, json", s)
	}
	return f, nil
}
