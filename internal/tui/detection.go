package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars are set by common CI providers. Any of them disables prompts.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITBUCKET_BUILD_NUMBER",
	"DRONE",
	"TF_BUILD",
	"CODEBUILD_BUILD_ID",
	"APPVEYOR",
	"TEAMCITY_VERSION",
}

// Overridable in tests.
var (
	getenv     = os.Getenv
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
	}
)

// IsInteractive reports whether prompts and spinners may be shown: stdout must
// be a terminal and no CI environment variable may be set.
func IsInteractive() bool {
	if !isTerminal() {
		return false
	}
	return !IsCI()
}

// IsCI reports whether a known CI environment variable is set.
func IsCI() bool {
	for _, env := range ciEnvVars {
		if getenv(env) != "" {
			return true
		}
	}
	return false
}
