// Package patterns turns the raw "projects" input into a list of glob patterns.
package patterns

import (
	"github.com/indaco/csprojver/internal/apperrors"
	"github.com/tidwall/gjson"
)

var errNoPatterns = &apperrors.ConfigurationError{
	Input:   "projects",
	Message: "Project files pattern is not specified, or invalid.",
}

// Resolve normalizes raw into a pattern list.
//
// A JSON array yields its elements, strings unquoted and any other value by its
// JSON text. Any other non-empty input, including JSON scalars and objects, is
// taken verbatim as a single pattern. An empty result is a configuration error.
func Resolve(raw string) ([]string, error) {
	var list []string

	switch {
	case gjson.Valid(raw) && gjson.Parse(raw).IsArray():
		for _, elem := range gjson.Parse(raw).Array() {
			if elem.Type == gjson.String {
				list = append(list, elem.String())
			} else {
				list = append(list, elem.Raw)
			}
		}
	case raw != "":
		list = []string{raw}
	}

	if len(list) == 0 {
		return nil, errNoPatterns
	}
	return list, nil
}

// ResolveList is Resolve for inputs that already arrive as a list, such as a
// repeated flag or a YAML sequence. A single element goes through Resolve so
// that a JSON array passed as one value still expands.
func ResolveList(raw []string) ([]string, error) {
	switch len(raw) {
	case 0:
		return nil, errNoPatterns
	case 1:
		return Resolve(raw[0])
	default:
		return append([]string(nil), raw...), nil
	}
}
