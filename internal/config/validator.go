package config

import (
	"fmt"
	"strings"

	"github.com/indaco/csprojver/internal/apperrors"
	"github.com/indaco/csprojver/internal/tui"
)

// ValidFormats lists the accepted report formats.
var ValidFormats = []string{"text", "json"}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Field is the configuration key that was checked.
	Field string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string
}

// Check runs every field check and returns one result per check.
func (c *Config) Check() []ValidationResult {
	results := make([]ValidationResult, 0, 4)
	add := func(field string, passed bool, message string) {
		results = append(results, ValidationResult{Field: field, Passed: passed, Message: message})
	}

	switch {
	case c.Extension == "":
		add("extension", true, "default")
	case !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2:
		add("extension", false, fmt.Sprintf("extension %q must start with a dot", c.Extension))
	case strings.ContainsAny(c.Extension, `/\*?[`):
		add("extension", false, fmt.Sprintf("extension %q must be a plain file suffix", c.Extension))
	default:
		add("extension", true, c.Extension)
	}

	if c.Format == "" || isValidFormat(c.Format) {
		add("format", true, c.Format)
	} else {
		add("format", false, fmt.Sprintf("unknown format %q, use one of %s", c.Format, strings.Join(ValidFormats, ", ")))
	}

	if c.Theme == "" || tui.IsValidTheme(c.Theme) {
		add("theme", true, c.Theme)
	} else {
		add("theme", false, fmt.Sprintf("unknown theme %q, use one of %s", c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}

	emptyIgnore := false
	for _, p := range c.Ignore {
		if strings.TrimSpace(p) == "" {
			emptyIgnore = true
		}
	}
	add("ignore", !emptyIgnore, "ignore patterns must not be empty")

	return results
}

// Validate returns the first failed check as a configuration error.
func (c *Config) Validate() error {
	results := c.Check()
	if !HasErrors(results) {
		return nil
	}
	for _, r := range results {
		if !r.Passed {
			return &apperrors.ConfigurationError{Input: r.Field, Message: r.Message}
		}
	}
	return nil
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
