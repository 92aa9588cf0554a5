package locator

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// gitignoreFile is a compiled .gitignore scoped to the directory it lives in.
type gitignoreFile struct {
	dir     string
	matcher *ignore.GitIgnore
}

// ignoreSet decides whether a slash-separated path relative to the root is excluded.
type ignoreSet struct {
	gitignores []gitignoreFile
	globs      []string
}

// loadGitignores compiles every .gitignore file found below the root.
func loadGitignores(fsys fs.FS) ([]gitignoreFile, error) {
	paths, err := doublestar.Glob(fsys, "**/.gitignore")
	if err != nil {
		return nil, fmt.Errorf("failed to scan for .gitignore files: %w", err)
	}

	files := make([]gitignoreFile, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			// Unreadable ignore files are skipped, like git does.
			continue
		}
		files = append(files, gitignoreFile{
			dir:     path.Dir(p),
			matcher: ignore.CompileIgnoreLines(readLines(data)...),
		})
	}
	return files, nil
}

func readLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}

// ignored reports whether p is excluded by any gitignore scope or ignore glob.
func (s *ignoreSet) ignored(p string) bool {
	for _, gi := range s.gitignores {
		rel := p
		if gi.dir != "." {
			if !strings.HasPrefix(p, gi.dir+"/") {
				continue
			}
			rel = strings.TrimPrefix(p, gi.dir+"/")
		}
		if gi.matcher.MatchesPath(rel) {
			return true
		}
	}
	return matchesAny(s.globs, p)
}

// matchesAny reports whether p, or one of its parent directories, matches a glob.
func matchesAny(globs []string, p string) bool {
	for _, g := range globs {
		for candidate := p; candidate != "." && candidate != "/"; candidate = path.Dir(candidate) {
			if ok, _ := doublestar.Match(g, candidate); ok {
				return true
			}
		}
	}
	return false
}
