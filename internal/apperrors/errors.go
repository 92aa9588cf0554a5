// Package apperrors defines the error kinds surfaced by csprojver.
// Every kind carries the user-facing message in Error(); the orchestrator
// reports that text verbatim to the host.
package apperrors

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a missing or invalid input.
type ConfigurationError struct {
	Input   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NotFoundError indicates that no project files matched the patterns.
type NotFoundError struct {
	Patterns []string
}

func (e *NotFoundError) Error() string {
	return "No project files found."
}

// FormatError indicates a well-formed document that is not a usable project file.
type FormatError struct {
	Path    string
	Message string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ParseError indicates that a project file is not well-formed XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse project file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError indicates a read or write failure on a project file.
type IOError struct {
	Path string
	Op   string // "read", "write" or "stat"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s project file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Kind names the error kind of err, or "unknown" for foreign errors.
func Kind(err error) string {
	var (
		cfgErr   *ConfigurationError
		nfErr    *NotFoundError
		fmtErr   *FormatError
		parseErr *ParseError
		ioErr    *IOError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &nfErr):
		return "not_found"
	case errors.As(err, &fmtErr):
		return "format"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &ioErr):
		return "io"
	default:
		return "unknown"
	}
}

// ExitCode maps an error to the process exit status.
// Configuration problems exit with 2, everything else with 1.
func ExitCode(err error) int {
	switch Kind(err) {
	case "":
		return 0
	case "configuration":
		return 2
	default:
		return 1
	}
}
