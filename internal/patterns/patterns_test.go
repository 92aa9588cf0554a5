package patterns

import (
	"errors"
	"slices"
	"testing"

	"github.com/indaco/csprojver/internal/apperrors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "json array",
			input: `["src/**/*.csproj", "tests/*.csproj"]`,
			want:  []string{"src/**/*.csproj", "tests/*.csproj"},
		},
		{
			name:  "json array with whitespace",
			input: " [\n  \"a.csproj\"\n] ",
			want:  []string{"a.csproj"},
		},
		{
			name:  "single element array",
			input: `["**/*.csproj"]`,
			want:  []string{"**/*.csproj"},
		},
		{
			name:  "non-string elements use their json text",
			input: `["a.csproj", 42]`,
			want:  []string{"a.csproj", "42"},
		},
		{
			name:  "null and bool elements keep their json text",
			input: `[null, true, false]`,
			want:  []string{"null", "true", "false"},
		},
		{
			name:  "nested values keep their json text",
			input: `["a.csproj", {"b": 1}, [2, 3]]`,
			want:  []string{"a.csproj", `{"b": 1}`, "[2, 3]"},
		},
		{
			name:  "bare glob",
			input: "src/*.csproj",
			want:  []string{"src/*.csproj"},
		},
		{
			name:  "negation glob",
			input: "!src/*.csproj",
			want:  []string{"!src/*.csproj"},
		},
		{
			name:  "json object taken verbatim",
			input: `{"a": 1}`,
			want:  []string{`{"a": 1}`},
		},
		{
			name:  "json string taken verbatim",
			input: `"x.csproj"`,
			want:  []string{`"x.csproj"`},
		},
		{
			name:  "broken json array taken verbatim",
			input: `["a.csproj"`,
			want:  []string{`["a.csproj"`},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty json array",
			input:   "[]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) = %v, want error", tt.input, got)
				}
				var cfgErr *apperrors.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected *apperrors.ConfigurationError, got %T", err)
				}
				if err.Error() != "Project files pattern is not specified, or invalid." {
					t.Errorf("unexpected message: %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveList(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{name: "nil", input: nil, wantErr: true},
		{name: "single glob", input: []string{"*.csproj"}, want: []string{"*.csproj"}},
		{name: "single json array", input: []string{`["a.csproj","b.csproj"]`}, want: []string{"a.csproj", "b.csproj"}},
		{name: "many", input: []string{"a.csproj", "b.csproj"}, want: []string{"a.csproj", "b.csproj"}},
		{name: "single empty", input: []string{""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ResolveList(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
