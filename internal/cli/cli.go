// Package cli builds the csprojver root command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/csprojver/internal/config"
	"github.com/indaco/csprojver/internal/core"
	"github.com/indaco/csprojver/internal/host"
	"github.com/indaco/csprojver/internal/locator"
	"github.com/indaco/csprojver/internal/logging"
	"github.com/indaco/csprojver/internal/printer"
	"github.com/indaco/csprojver/internal/report"
	"github.com/indaco/csprojver/internal/runner"
	"github.com/indaco/csprojver/internal/tui"
	"github.com/indaco/csprojver/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// RunError marks an error that was already reported to the host.
type RunError struct {
	Err error
}

func (e *RunError) Error() string { return e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// New builds the root command. cfg may be nil.
func New(cfg *config.Config) *urfavecli.Command {
	if cfg == nil {
		cfg = &config.Config{}
	}

	extension := cfg.Extension
	if extension == "" {
		extension = locator.DefaultExtension
	}
	format := cfg.Format
	if format == "" {
		format = string(report.FormatText)
	}

	return &urfavecli.Command{
		Name:      "csprojver",
		Usage:     fmt.Sprintf("Set AssemblyVersion and FileVersion in .NET project files (v%s)", version.GetVersion()),
		UsageText: "csprojver --version 1.2.3 --projects 'src/**/*.csproj'\ncsprojver --version v1.2.3 src/App/App.csproj src/Lib/Lib.csproj",
		ArgsUsage: "[patterns...]",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "version",
				Usage:   "Version to set, MAJOR.MINOR.PATCH with an optional leading v",
				Sources: urfavecli.EnvVars("INPUT_VERSION", "CSPROJVER_VERSION"),
				Config:  urfavecli.StringConfig{TrimSpace: true},
			},
			&urfavecli.StringFlag{
				Name:    "projects",
				Aliases: []string{"p"},
				Usage:   "Glob pattern, or a JSON array of patterns, selecting project files",
				Sources: urfavecli.EnvVars("INPUT_PROJECTS", "CSPROJVER_PROJECTS"),
				Config:  urfavecli.StringConfig{TrimSpace: true},
			},
			&urfavecli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Glob of paths to skip (repeatable)",
				Value: cfg.Ignore,
			},
			&urfavecli.BoolFlag{
				Name:  "no-gitignore",
				Usage: "Do not honor .gitignore files",
				Value: !cfg.UseGitignore(),
			},
			&urfavecli.StringFlag{
				Name:  "extension",
				Usage: "Project file suffix to keep",
				Value: extension,
			},
			&urfavecli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Directory the patterns are relative to",
				Value:   ".",
			},
			&urfavecli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing files",
			},
			&urfavecli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (text, json)",
				Value:   format,
			},
			&urfavecli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every located and processed file",
			},
			&urfavecli.BoolFlag{
				Name:  "quiet",
				Usage: "Only print errors",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color"))
			tui.SetTheme(cfg.Theme)
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return run(ctx, cmd, cfg)
		},
	}
}

func run(ctx context.Context, cmd *urfavecli.Command, cfg *config.Config) error {
	flagCfg := config.Config{
		Extension: cmd.String("extension"),
		Format:    cmd.String("format"),
		Ignore:    cmd.StringSlice("ignore"),
	}

	inputs := map[string]string{
		runner.InputVersion:  cmd.String("version"),
		runner.InputProjects: cmd.String("projects"),
	}
	h := host.WithInputs(host.Detect(inputs), inputs)

	if err := flagCfg.Validate(); err != nil {
		h.SetFailed(err.Error())
		return &RunError{Err: err}
	}

	level := logging.LevelNormal
	switch {
	case cmd.Bool("quiet"):
		level = logging.LevelQuiet
	case cmd.Bool("verbose"):
		level = logging.LevelVerbose
	}
	logger := logging.New(os.Stderr, level)
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	defaultProjects := cfg.Projects
	if args := cmd.Args().Slice(); len(args) > 0 {
		defaultProjects = args
	}

	opts := runner.Options{
		Root: cmd.String("dir"),
		Locator: locator.Options{
			Extension: flagCfg.Extension,
			Gitignore: !cmd.Bool("no-gitignore"),
			Ignore:    flagCfg.Ignore,
		},
		DefaultVersion:  cfg.Version,
		DefaultProjects: defaultProjects,
		DryRun:          cmd.Bool("dry-run"),
		Yes:             cmd.Bool("yes"),
		ReportFormat:    report.ParseFormat(flagCfg.Format),
	}
	if !cmd.Bool("quiet") {
		opts.Report = os.Stdout
	}

	if err := runner.New(h, logger, core.NewOSFileSystem(), opts).Run(ctx); err != nil {
		return &RunError{Err: err}
	}
	return nil
}
