// Package config loads the optional csprojver configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvConfigPath names an explicit configuration file.
	EnvConfigPath = "CSPROJVER_CONFIG"

	// YAMLFile and TOMLFile are looked up in the working directory, YAML first.
	YAMLFile = ".csprojver.yaml"
	TOMLFile = ".csprojver.toml"
)

// Config holds settings that apply when the matching flag or input is not set.
type Config struct {
	Version   string   `yaml:"version,omitempty" toml:"version,omitempty"`
	Projects  []string `yaml:"projects,omitempty" toml:"projects,omitempty"`
	Ignore    []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`
	Gitignore *bool    `yaml:"gitignore,omitempty" toml:"gitignore,omitempty"`
	Extension string   `yaml:"extension,omitempty" toml:"extension,omitempty"`
	Format    string   `yaml:"format,omitempty" toml:"format,omitempty"`
	Theme     string   `yaml:"theme,omitempty" toml:"theme,omitempty"`

	// Source is the file the configuration was read from.
	Source string `yaml:"-" toml:"-"`
}

// fileConfig mirrors Config on disk, where "projects" may be a string or a list.
type fileConfig struct {
	Version   string   `yaml:"version" toml:"version"`
	Projects  any      `yaml:"projects" toml:"projects"`
	Ignore    []string `yaml:"ignore" toml:"ignore"`
	Gitignore *bool    `yaml:"gitignore" toml:"gitignore"`
	Extension string   `yaml:"extension" toml:"extension"`
	Format    string   `yaml:"format" toml:"format"`
	Theme     string   `yaml:"theme" toml:"theme"`
}

// UseGitignore reports whether .gitignore files are honored. Defaults to true.
func (c *Config) UseGitignore() bool {
	return c == nil || c.Gitignore == nil || *c.Gitignore
}

// LoadConfigFn loads the configuration for the working directory.
// It is a variable so tests can replace it.
var LoadConfigFn = func() (*Config, error) {
	return Load(".")
}

// Load reads the configuration visible from dir.
//
// CSPROJVER_CONFIG wins when set. Otherwise dir/.csprojver.yaml, then
// dir/.csprojver.toml is read. Without any file Load returns nil, nil.
func Load(dir string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvConfigPath)
		}
		return LoadFile(cleanPath)
	}

	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	return nil, nil
}

// LoadFile reads a single configuration file. Files ending in ".toml" are
// decoded as TOML, everything else as YAML. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&raw)
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		err = decoder.Decode(&raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	projects, err := stringList(raw.Projects)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %q: projects: %w", path, err)
	}

	cfg := &Config{
		Version:   raw.Version,
		Projects:  projects,
		Ignore:    raw.Ignore,
		Gitignore: raw.Gitignore,
		Extension: raw.Extension,
		Format:    raw.Format,
		Theme:     raw.Theme,
		Source:    path,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func stringList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []any:
		list := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, want string", i, item)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("got %T, want string or list of strings", v)
	}
}
