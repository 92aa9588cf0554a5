// Package runner sets a version on the project files selected by the host
// inputs and reports the outcome back to the host.
package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/csprojver/internal/core"
	"github.com/indaco/csprojver/internal/host"
	"github.com/indaco/csprojver/internal/locator"
	"github.com/indaco/csprojver/internal/patterns"
	"github.com/indaco/csprojver/internal/project"
	"github.com/indaco/csprojver/internal/report"
	"github.com/indaco/csprojver/internal/semver"
	"github.com/indaco/csprojver/internal/tui"
)

// SuccessMessage is reported to the host after every file was processed.
const SuccessMessage = "Version is set."

// DryRunMessage is reported to the host instead of SuccessMessage when no
// file was written.
const DryRunMessage = "Dry run: version %s would be set on %d project files."

// Input names read from the host.
const (
	InputVersion  = "version"
	InputProjects = "projects"
)

// Output names published to the host.
const (
	OutputVersion = "version"
	OutputFiles   = "files"
)

// Options configures a Runner.
type Options struct {
	// Root is the directory patterns are relative to. Empty means ".".
	Root string

	// Locator controls pattern expansion.
	Locator locator.Options

	// DefaultVersion and DefaultProjects apply when the host input is empty.
	DefaultVersion  string
	DefaultProjects []string

	// DryRun computes changes without writing files.
	DryRun bool

	// Yes skips the confirmation prompt.
	Yes bool

	// Report receives a summary in ReportFormat. Nil disables it.
	Report       io.Writer
	ReportFormat report.Format
}

// Runner runs one version update.
type Runner struct {
	host   host.Host
	logger *log.Logger
	fs     core.FileSystem
	opts   Options

	tree        fs.FS
	prompter    tui.Prompter
	interactive func() bool
}

// New creates a Runner. Files are located on os.DirFS(opts.Root) and
// rewritten through fsys.
func New(h host.Host, logger *log.Logger, fsys core.FileSystem, opts Options) *Runner {
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Runner{
		host:        h,
		logger:      logger,
		fs:          fsys,
		opts:        opts,
		tree:        os.DirFS(opts.Root),
		prompter:    tui.NewPrompter(),
		interactive: tui.IsInteractive,
	}
}

// SetTree replaces the file tree patterns are matched against.
func (r *Runner) SetTree(tree fs.FS) {
	r.tree = tree
}

// SetPrompter replaces the confirmation prompter and the check that decides
// whether it is shown.
func (r *Runner) SetPrompter(p tui.Prompter, interactive func() bool) {
	r.prompter = p
	r.interactive = interactive
}

// Run validates the inputs, locates the project files and sets the version.
//
// On success the host receives SuccessMessage and the version and files
// outputs. A dry run reports DryRunMessage and publishes no outputs. On failure the error message goes to the host failure channel and
// the error is returned. Files written before a failure stay written.
func (r *Runner) Run(ctx context.Context) error {
	changes, version, err := r.run(ctx)
	if err != nil {
		r.logger.Error(err.Error())
		r.host.SetFailed(err.Error())
		return err
	}
	if changes == nil {
		return nil
	}

	if r.opts.Report != nil {
		rep := report.Report{Version: version, DryRun: r.opts.DryRun, Changes: changes}
		if err := report.NewFormatter(r.opts.ReportFormat).Write(r.opts.Report, rep); err != nil {
			r.logger.Warn("failed to write report", "err", err)
		}
	}

	if r.opts.DryRun {
		msg := fmt.Sprintf(DryRunMessage, version, len(changes))
		r.logger.Info(msg)
		r.host.Info(msg)
		return nil
	}

	if err := r.publish(version, changes); err != nil {
		r.logger.Error(err.Error())
		r.host.SetFailed(err.Error())
		return err
	}

	r.logger.Info(SuccessMessage)
	r.host.Info(SuccessMessage)
	return nil
}

// run returns nil changes when the user declined the prompt.
func (r *Runner) run(ctx context.Context) ([]project.Change, string, error) {
	version, err := r.version()
	if err != nil {
		return nil, "", err
	}

	pats, err := r.patterns()
	if err != nil {
		return nil, "", err
	}
	r.logger.Debug("resolved patterns", "patterns", pats)

	files, err := locator.New(r.tree, r.opts.Locator).Locate(ctx, pats)
	if err != nil {
		return nil, "", err
	}
	for _, f := range files {
		r.logger.Debug("located project file", "path", f)
	}

	ok, err := r.confirm(version, files)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		r.logger.Warn("aborted, no project files were changed")
		return nil, version, nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(r.opts.Root, filepath.FromSlash(f))
	}

	writer := project.NewWriter(r.fs)
	writer.DryRun = r.opts.DryRun
	writer.OnFile = func(c project.Change) {
		r.logger.Debug("processed project file", "path", c.Path, "changed", c.Changed, "dryRun", r.opts.DryRun)
	}

	var changes []project.Change
	title := fmt.Sprintf("Setting version %s on %d project files...", version, len(files))
	err = tui.WithSpinner(title, func() error {
		var applyErr error
		changes, applyErr = writer.Apply(ctx, version, paths)
		return applyErr
	})
	if err != nil {
		return nil, "", err
	}

	// Report paths as they were located, relative to Root.
	for i := range changes {
		changes[i].Path = files[i]
	}
	return changes, version, nil
}

func (r *Runner) version() (string, error) {
	raw := r.host.Input(InputVersion)
	if raw == "" {
		raw = r.opts.DefaultVersion
	}
	return semver.Validate(raw)
}

func (r *Runner) patterns() ([]string, error) {
	if raw := r.host.Input(InputProjects); raw != "" {
		return patterns.Resolve(raw)
	}
	return patterns.ResolveList(r.opts.DefaultProjects)
}

func (r *Runner) confirm(version string, files []string) (bool, error) {
	if r.opts.Yes || r.opts.DryRun || r.prompter == nil || r.interactive == nil || !r.interactive() {
		return true, nil
	}
	return r.prompter.Confirm(
		fmt.Sprintf("Set version %s on %d project files?", version, len(files)),
		"AssemblyVersion and FileVersion will be written in place.",
	)
}

func (r *Runner) publish(version string, changes []project.Change) error {
	files, err := report.FilesJSON(changes)
	if err != nil {
		return err
	}
	if err := r.host.SetOutput(OutputVersion, version); err != nil {
		return fmt.Errorf("failed to set output %q: %w", OutputVersion, err)
	}
	if err := r.host.SetOutput(OutputFiles, files); err != nil {
		return fmt.Errorf("failed to set output %q: %w", OutputFiles, err)
	}
	return nil
}
