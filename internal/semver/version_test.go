package semver

import (
	"errors"
	"strings"
	"testing"

	"github.com/indaco/csprojver/internal/apperrors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "plain", input: "1.2.3", want: "1.2.3"},
		{name: "v prefix", input: "v3.4.5", want: "3.4.5"},
		{name: "zeros", input: "0.0.0", want: "0.0.0"},
		{name: "large components", input: "2024.10.117", want: "2024.10.117"},
		{name: "leading zeros kept", input: "01.02.03", want: "01.02.03"},
		{name: "empty", input: "", wantErr: "Version is not specified."},
		{name: "only v", input: "v", wantErr: "Invalid version format."},
		{name: "double v", input: "vv1.2.3", wantErr: "Invalid version format."},
		{name: "uppercase V", input: "V1.2.3", wantErr: "Invalid version format."},
		{name: "two components", input: "1.2", wantErr: "Invalid version format."},
		{name: "four components", input: "1.2.3.4", wantErr: "Invalid version format."},
		{name: "pre-release", input: "1.2.3-beta.1", wantErr: "Invalid version format."},
		{name: "build metadata", input: "1.2.3+build", wantErr: "Invalid version format."},
		{name: "leading space", input: " 1.2.3", wantErr: "Invalid version format."},
		{name: "trailing newline", input: "1.2.3\n", wantErr: "Invalid version format."},
		{name: "negative", input: "-1.2.3", wantErr: "Invalid version format."},
		{name: "letters", input: "a.b.c", wantErr: "Invalid version format."},
		{name: "too long", input: strings.Repeat("1", 130) + ".0.0", wantErr: "Invalid version format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Validate(%q) = %q, want error", tt.input, got)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
				}
				var cfgErr *apperrors.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected *apperrors.ConfigurationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("v10.20.30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := SemVersion{Major: 10, Minor: 20, Patch: 30}
	if v != want {
		t.Errorf("ParseVersion = %+v, want %+v", v, want)
	}
	if v.String() != "10.20.30" {
		t.Errorf("String() = %q, want %q", v.String(), "10.20.30")
	}
}

func TestParseVersion_Overflow(t *testing.T) {
	_, err := ParseVersion("99999999999999999999999.0.0")
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
	var cfgErr *apperrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *apperrors.ConfigurationError, got %T", err)
	}
}

func TestSemVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b SemVersion
		want int
	}{
		{SemVersion{1, 2, 3}, SemVersion{1, 2, 3}, 0},
		{SemVersion{1, 2, 3}, SemVersion{1, 2, 4}, -1},
		{SemVersion{1, 3, 0}, SemVersion{1, 2, 9}, 1},
		{SemVersion{2, 0, 0}, SemVersion{10, 0, 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"_vs_"+tt.b.String(), func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}
