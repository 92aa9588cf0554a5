// Package host abstracts the automation platform that supplies inputs to
// csprojver and receives its status.
package host

import (
	"os"
	"strings"
)

// Host is the platform csprojver runs under.
type Host interface {
	// Input returns the named input, or "" when it is not set.
	Input(name string) string

	// Info reports a status line.
	Info(msg string)

	// SetFailed reports msg as the failure reason and marks the run failed.
	SetFailed(msg string)

	// SetOutput publishes a named output value for later steps.
	SetOutput(name, value string) error

	// Failed reports whether SetFailed has been called.
	Failed() bool
}

// IsActions reports whether the process runs inside a GitHub Actions job.
func IsActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Detect returns an ActionsHost inside GitHub Actions and a StaticHost over
// inputs otherwise.
func Detect(inputs map[string]string) Host {
	if IsActions() {
		return NewActionsHost(os.Stdout)
	}
	return NewStaticHost(inputs)
}

// inputEnvName maps an input name to its INPUT_* variable.
func inputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}
