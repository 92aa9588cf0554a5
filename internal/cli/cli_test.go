package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/csprojver/internal/apperrors"
	"github.com/indaco/csprojver/internal/config"
	"github.com/indaco/csprojver/internal/printer"
	"github.com/indaco/csprojver/internal/testutils"
	"github.com/tidwall/gjson"
)

const sdkProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
</Project>
`

// isolateEnv clears every variable that feeds a flag or selects the host.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_ACTIONS", "INPUT_VERSION", "INPUT_PROJECTS",
		"CSPROJVER_VERSION", "CSPROJVER_PROJECTS",
	} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() { printer.SetNoColor(false) })
}

func newTree(t *testing.T) string {
	t.Helper()
	return testutils.WriteProjectTree(t, map[string]string{
		"src/App/App.csproj":       sdkProject,
		"src/Lib/Lib.csproj":       "<Project></Project>",
		"tests/App.Tests.csproj":   "<Project></Project>",
		"src/App/bin/Gen.csproj":   "<Project></Project>",
		"src/App/.gitignore":       "bin/\n",
		"src/App/Program.cs":       "class Program {}",
		"src/Lib/Lib.csproj.user":  "<Project></Project>",
		"docs/README.md":           "# docs",
		"src/Legacy/Legacy.vbproj": "<Project></Project>",
	})
}

func runCommand(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var runErr error
	out, err := testutils.CaptureStdout(func() {
		runErr = New(cfg).Run(context.Background(), append([]string{"csprojver", "--no-color"}, args...))
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	return out, runErr
}

func TestRun_SetsVersion(t *testing.T) {
	isolateEnv(t)
	dir := newTree(t)

	out, err := runCommand(t, nil, "--version", "v1.2.3", "--projects", "src/**/*.csproj", "--dir", dir, "--yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rel := range []string{"src/App/App.csproj", "src/Lib/Lib.csproj"} {
		content := testutils.ReadFile(t, filepath.Join(dir, rel))
		if !strings.Contains(content, "<AssemblyVersion>1.2.3</AssemblyVersion>") {
			t.Errorf("%s not updated:\n%s", rel, content)
		}
	}
	if content := testutils.ReadFile(t, filepath.Join(dir, "src/App/bin/Gen.csproj")); content != "<Project></Project>" {
		t.Errorf("gitignored file was modified:\n%s", content)
	}
	if content := testutils.ReadFile(t, filepath.Join(dir, "tests/App.Tests.csproj")); content != "<Project></Project>" {
		t.Error("file outside the pattern was modified")
	}

	for _, want := range []string{"✓ src/App/App.csproj", "✓ src/Lib/Lib.csproj", "Version is set."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRun_JSONReport(t *testing.T) {
	isolateEnv(t)
	dir := newTree(t)

	out, err := runCommand(t, nil, "--version", "2.0.0", "-p", `["src/Lib/*.csproj"]`, "--dir", dir, "-f", "json", "--dry-run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, _, _ := strings.Cut(out, "\n")
	if !gjson.Valid(doc) {
		t.Fatalf("first line is not JSON: %q", doc)
	}
	if got := gjson.Get(doc, "files.#").Int(); got != 1 {
		t.Errorf("files = %d, want 1", got)
	}
	if !gjson.Get(doc, "dryRun").Bool() {
		t.Error("dryRun should be true")
	}
	if content := testutils.ReadFile(t, filepath.Join(dir, "src/Lib/Lib.csproj")); content != "<Project></Project>" {
		t.Error("dry run modified the file")
	}
}

func TestRun_EnvInputs(t *testing.T) {
	isolateEnv(t)
	dir := newTree(t)
	t.Setenv("INPUT_VERSION", "v7.0.0")
	t.Setenv("INPUT_PROJECTS", "src/Lib/Lib.csproj")

	if _, err := runCommand(t, nil, "--dir", dir, "--quiet"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content := testutils.ReadFile(t, filepath.Join(dir, "src/Lib/Lib.csproj")); !strings.Contains(content, "<FileVersion>7.0.0</FileVersion>") {
		t.Errorf("env inputs not applied:\n%s", content)
	}
}

func TestRun_EnvInputsTrimmed(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		projects string
	}{
		{name: "trailing newline", version: "v1.2.3\n", projects: "src/Lib/Lib.csproj\n"},
		{name: "surrounding spaces", version: " v1.2.3\n", projects: "  src/Lib/*.csproj "},
		{name: "json array with newline", version: "1.2.3", projects: "[\"src/Lib/Lib.csproj\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			dir := newTree(t)
			t.Setenv("INPUT_VERSION", tt.version)
			t.Setenv("INPUT_PROJECTS", tt.projects)

			if _, err := runCommand(t, nil, "--dir", dir, "--quiet"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if content := testutils.ReadFile(t, filepath.Join(dir, "src/Lib/Lib.csproj")); !strings.Contains(content, "<AssemblyVersion>1.2.3</AssemblyVersion>") {
				t.Errorf("trimmed inputs not applied:\n%s", content)
			}
		})
	}
}

func TestRun_ConfigAndArgs(t *testing.T) {
	isolateEnv(t)

	t.Run("config defaults", func(t *testing.T) {
		dir := newTree(t)
		cfg := &config.Config{Version: "4.5.6", Projects: []string{"src/Legacy/*.vbproj"}, Extension: ".vbproj"}

		if _, err := runCommand(t, cfg, "--dir", dir, "--quiet"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content := testutils.ReadFile(t, filepath.Join(dir, "src/Legacy/Legacy.vbproj")); !strings.Contains(content, "4.5.6") {
			t.Errorf("config defaults not applied:\n%s", content)
		}
	})

	t.Run("positional patterns replace config projects", func(t *testing.T) {
		dir := newTree(t)
		cfg := &config.Config{Projects: []string{"src/**/*.csproj"}}

		if _, err := runCommand(t, cfg, "--version", "1.0.0", "--dir", dir, "--quiet", "tests/*.csproj"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content := testutils.ReadFile(t, filepath.Join(dir, "tests/App.Tests.csproj")); !strings.Contains(content, "1.0.0") {
			t.Error("positional pattern not applied")
		}
		if content := testutils.ReadFile(t, filepath.Join(dir, "src/Lib/Lib.csproj")); content != "<Project></Project>" {
			t.Error("config projects should be replaced by positional patterns")
		}
	})

	t.Run("ignore and no-gitignore", func(t *testing.T) {
		dir := newTree(t)

		_, err := runCommand(t, nil, "--version", "1.0.0", "-p", "src/**", "--dir", dir, "--quiet",
			"--no-gitignore", "--ignore", "src/Lib/**")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content := testutils.ReadFile(t, filepath.Join(dir, "src/App/bin/Gen.csproj")); !strings.Contains(content, "1.0.0") {
			t.Error("--no-gitignore should include gitignored files")
		}
		if content := testutils.ReadFile(t, filepath.Join(dir, "src/Lib/Lib.csproj")); content != "<Project></Project>" {
			t.Error("--ignore should exclude src/Lib")
		}
	})
}

func TestRun_Errors(t *testing.T) {
	isolateEnv(t)

	t.Run("runner failure is reported", func(t *testing.T) {
		dir := newTree(t)
		_, err := runCommand(t, nil, "--version", "1.0.0", "-p", "nothing/*.csproj", "--dir", dir)

		var runErr *RunError
		if !errors.As(err, &runErr) {
			t.Fatalf("expected *RunError, got %T (%v)", err, err)
		}
		var nfErr *apperrors.NotFoundError
		if !errors.As(err, &nfErr) {
			t.Errorf("expected NotFoundError inside, got %v", err)
		}
		if apperrors.ExitCode(err) != 1 {
			t.Errorf("exit code = %d, want 1", apperrors.ExitCode(err))
		}
	})

	t.Run("invalid version exits with 2", func(t *testing.T) {
		dir := newTree(t)
		_, err := runCommand(t, nil, "--version", "1.0", "-p", "**/*.csproj", "--dir", dir)
		if err == nil || err.Error() != "Invalid version format." {
			t.Fatalf("unexpected error: %v", err)
		}
		if apperrors.ExitCode(err) != 2 {
			t.Errorf("exit code = %d, want 2", apperrors.ExitCode(err))
		}
	})

	t.Run("invalid flags are reported to the host", func(t *testing.T) {
		tests := []struct {
			name    string
			actions string
			args    []string
			input   string
			want    string
		}{
			{
				name:  "format outside actions",
				args:  []string{"--format", "xml"},
				input: "format",
			},
			{
				name:    "format inside actions",
				actions: "true",
				args:    []string{"--format", "xml"},
				input:   "format",
				want:    "::error::unknown format",
			},
			{
				name:    "extension inside actions",
				actions: "true",
				args:    []string{"--extension", "csproj"},
				input:   "extension",
				want:    "::error::extension",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv("GITHUB_ACTIONS", tt.actions)
				t.Setenv("GITHUB_OUTPUT", "")

				out, err := runCommand(t, nil, append([]string{"--version", "1.0.0", "-p", "*.csproj"}, tt.args...)...)

				var runErr *RunError
				if !errors.As(err, &runErr) {
					t.Fatalf("expected *RunError, got %T (%v)", err, err)
				}
				var cfgErr *apperrors.ConfigurationError
				if !errors.As(err, &cfgErr) || cfgErr.Input != tt.input {
					t.Errorf("expected %s ConfigurationError, got %v", tt.input, err)
				}
				if apperrors.ExitCode(err) != 2 {
					t.Errorf("exit code = %d, want 2", apperrors.ExitCode(err))
				}
				if tt.want != "" && !strings.Contains(out, tt.want) {
					t.Errorf("expected output to contain %q, got:\n%s", tt.want, out)
				}
			})
		}
	})
}
