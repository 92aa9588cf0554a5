package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/indaco/csprojver/internal/apperrors"
)

// SemVersion is a release version of the form major.minor.patch.
type SemVersion struct {
	Major int
	Minor int
	Patch int
}

var (
	// versionRegex matches exactly three dot-separated numeric components.
	// No prefix, pre-release or build metadata is accepted here; the optional
	// "v" prefix is stripped before matching.
	versionRegex = regexp.MustCompile(`^([0-9]+)\.([0-9]+)\.([0-9]+)$`)

	errNotSpecified = &apperrors.ConfigurationError{Input: "version", Message: "Version is not specified."}
	errInvalid      = &apperrors.ConfigurationError{Input: "version", Message: "Invalid version format."}
)

// maxVersionLength bounds the input before it reaches the regex.
const maxVersionLength = 128

// String returns the major.minor.patch form.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	return sb.String()
}

// Validate normalizes a caller-supplied version and checks its format.
//
// A single leading "v" is removed ("v1.2.3" becomes "1.2.3", "vv1.2.3" stays
// invalid). The returned string is the normalized input itself, so leading
// zeros such as "01.2.3" are kept as written.
//
// Returns a *apperrors.ConfigurationError when raw is empty or malformed.
func Validate(raw string) (string, error) {
	if raw == "" {
		return "", errNotSpecified
	}
	version := strings.TrimPrefix(raw, "v")
	if len(version) > maxVersionLength || !versionRegex.MatchString(version) {
		return "", errInvalid
	}
	return version, nil
}

// ParseVersion validates raw and returns its numeric components.
// Components that overflow an int are rejected.
func ParseVersion(raw string) (SemVersion, error) {
	version, err := Validate(raw)
	if err != nil {
		return SemVersion{}, err
	}

	matches := versionRegex.FindStringSubmatch(version)
	parts := [3]int{}
	for i := range parts {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return SemVersion{}, &apperrors.ConfigurationError{
				Input:   "version",
				Message: fmt.Sprintf("Invalid version format: component %q is out of range.", matches[i+1]),
			}
		}
		parts[i] = n
	}

	return SemVersion{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// Compare returns -1 if v < other, 0 if equal and +1 if v > other.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
