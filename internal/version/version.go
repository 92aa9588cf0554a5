// Package version reports the build version of csprojver.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is set at build time:
//
//	go build -ldflags "-X github.com/indaco/csprojver/internal/version.Version=1.0.0"
var Version = ""

// readBuildInfo is replaceable in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the build version without a leading "v".
// It falls back to the main module version embedded by the Go toolchain,
// then to "dev".
func GetVersion() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
