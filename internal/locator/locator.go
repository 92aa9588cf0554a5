package locator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/csprojver/internal/apperrors"
)

// DefaultExtension is the project file suffix matched when none is configured.
const DefaultExtension = ".csproj"

// Options controls how patterns are expanded.
type Options struct {
	// Extension is the exact, case-sensitive suffix kept after expansion.
	Extension string

	// Gitignore enables .gitignore handling.
	Gitignore bool

	// Ignore lists extra globs whose matches are excluded.
	Ignore []string
}

// DefaultOptions returns the options used by the GitHub Action.
func DefaultOptions() Options {
	return Options{Extension: DefaultExtension, Gitignore: true}
}

// Locator expands glob patterns against a file tree.
type Locator struct {
	fsys fs.FS
	opts Options
}

// New creates a Locator over fsys. fsys is normally os.DirFS of the working directory.
func New(fsys fs.FS, opts Options) *Locator {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	return &Locator{fsys: fsys, opts: opts}
}

// Locate returns the slash-separated paths, relative to the root, of every
// project file matched by patterns.
//
// Patterns starting with "!" remove their matches from the result. The result
// keeps pattern order, then the glob order within each pattern; duplicates are
// dropped. An empty result is an *apperrors.NotFoundError.
func (l *Locator) Locate(ctx context.Context, patterns []string) ([]string, error) {
	var include, exclude []string
	for _, raw := range patterns {
		negated := strings.HasPrefix(raw, "!")
		p, err := normalizePattern(strings.TrimPrefix(raw, "!"))
		if err != nil {
			return nil, err
		}
		if p == "" {
			continue
		}
		if negated {
			exclude = append(exclude, p)
		} else {
			include = append(include, p)
		}
	}

	ignores := &ignoreSet{globs: l.opts.Ignore}
	if l.opts.Gitignore {
		gitignores, err := loadGitignores(l.fsys)
		if err != nil {
			return nil, err
		}
		ignores.gitignores = gitignores
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := l.expand(pattern)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			if !strings.HasSuffix(m, l.opts.Extension) {
				continue
			}
			if ignores.ignored(m) || matchesAny(exclude, m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	if len(files) == 0 {
		return nil, &apperrors.NotFoundError{Patterns: patterns}
	}
	return files, nil
}

// expand globs a single pattern and replaces directory matches with the files below them.
func (l *Locator) expand(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(l.fsys, pattern)
	if err != nil {
		return nil, &apperrors.ConfigurationError{
			Input:   "projects",
			Message: fmt.Sprintf("Invalid project files pattern %q: %v", pattern, err),
		}
	}

	var files []string
	for _, m := range matches {
		info, err := fs.Stat(l.fsys, m)
		if err != nil {
			// Dangling symlinks and entries removed mid-scan are not candidates.
			continue
		}
		switch {
		case info.IsDir():
			below, err := l.filesBelow(m)
			if err != nil {
				return nil, err
			}
			files = append(files, below...)
		case info.Mode().IsRegular():
			files = append(files, m)
		}
	}
	return files, nil
}

// filesBelow lists the regular files (and symlinks to regular files) under dir.
func (l *Locator) filesBelow(dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := fs.Stat(l.fsys, p); err == nil && info.Mode().IsRegular() {
				files = append(files, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand directory %q: %w", dir, err)
	}
	return files, nil
}

// normalizePattern converts a user pattern to the slash-separated, root-relative
// form expected by fs.FS.
func normalizePattern(p string) (string, error) {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	if p == "." {
		return ".", nil
	}
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", &apperrors.ConfigurationError{
			Input:   "projects",
			Message: fmt.Sprintf("Project files pattern %q must be relative to the working directory.", p),
		}
	}
	p = strings.TrimSuffix(p, "/")
	if !doublestar.ValidatePattern(p) {
		return "", &apperrors.ConfigurationError{
			Input:   "projects",
			Message: fmt.Sprintf("Invalid project files pattern %q.", p),
		}
	}
	return p, nil
}
