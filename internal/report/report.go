// Package report renders the outcome of a version update as text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/indaco/csprojver/internal/printer"
	"github.com/indaco/csprojver/internal/project"
	"github.com/indaco/csprojver/internal/semver"
	"github.com/tidwall/sjson"
)

// Format selects the report rendering.
type Format string

const (
	// FormatText is the human-readable summary.
	FormatText Format = "text"

	// FormatJSON is a machine-readable document.
	FormatJSON Format = "json"
)

// ParseFormat converts a string to Format. Unknown values map to FormatText.
func ParseFormat(s string) Format {
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// Report is the outcome of one run.
type Report struct {
	Version string
	DryRun  bool
	Changes []project.Change
}

// Formatter renders reports.
type Formatter struct {
	format Format
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Write renders r to w.
func (f *Formatter) Write(w io.Writer, r Report) error {
	out, err := f.Format(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Format renders r.
func (f *Formatter) Format(r Report) (string, error) {
	if f.format == FormatJSON {
		doc, err := JSON(r)
		if err != nil {
			return "", err
		}
		return doc + "\n", nil
	}
	return Text(r), nil
}

// Text renders r as one line per file and per version element.
func Text(r Report) string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString(printer.Warning("Dry run: no files were written."))
		sb.WriteString("\n")
	}

	for _, c := range r.Changes {
		status := printer.Success("✓")
		suffix := ""
		if !c.Changed {
			status = printer.Faint("-")
			suffix = " " + printer.Faint("(unchanged)")
		}
		fmt.Fprintf(&sb, "%s %s%s\n", status, printer.Bold(c.Path), suffix)

		for _, e := range c.Elements {
			fmt.Fprintf(&sb, "    %s: %s\n", e.Tag, describe(e, r.Version))
		}
	}

	changed := 0
	for _, c := range r.Changes {
		if c.Changed {
			changed++
		}
	}
	fmt.Fprintf(&sb, "%s\n", printer.Faint(fmt.Sprintf("%d of %d project files updated to %s", changed, len(r.Changes), r.Version)))

	return sb.String()
}

func describe(e project.ElementChange, version string) string {
	switch {
	case e.Created && e.CreatedGroup:
		return fmt.Sprintf("%s %s", version, printer.Info("(created with PropertyGroup)"))
	case e.Created:
		return fmt.Sprintf("%s %s", version, printer.Info("(created)"))
	case e.Previous == version:
		return fmt.Sprintf("%s %s", version, printer.Faint("(unchanged)"))
	}

	line := fmt.Sprintf("%s → %s", e.Previous, version)
	if isDowngrade(e.Previous, version) {
		line += " " + printer.Warning("(downgrade)")
	}
	return line
}

// isDowngrade reports whether next sorts before prev. Values that are not
// MAJOR.MINOR.PATCH never count as a downgrade.
func isDowngrade(prev, next string) bool {
	p, err := semver.ParseVersion(prev)
	if err != nil {
		return false
	}
	n, err := semver.ParseVersion(next)
	if err != nil {
		return false
	}
	return n.Compare(p) < 0
}

// JSON renders r as a single JSON object.
func JSON(r Report) (string, error) {
	doc := `{}`
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("version", r.Version)
	set("dryRun", r.DryRun)
	set("files", []any{})
	for i, c := range r.Changes {
		prefix := fmt.Sprintf("files.%d.", i)
		set(prefix+"path", c.Path)
		set(prefix+"changed", c.Changed)
		for _, e := range c.Elements {
			key := prefix + jsonKey(e.Tag) + "."
			set(key+"previous", e.Previous)
			set(key+"created", e.Created)
			set(key+"downgrade", isDowngrade(e.Previous, r.Version))
		}
	}

	if err != nil {
		return "", fmt.Errorf("failed to build JSON report: %w", err)
	}
	return doc, nil
}

// FilesJSON renders the paths of changes as a JSON array of strings.
func FilesJSON(changes []project.Change) (string, error) {
	doc := `[]`
	for _, c := range changes {
		var err error
		doc, err = sjson.Set(doc, "-1", c.Path)
		if err != nil {
			return "", fmt.Errorf("failed to build files list: %w", err)
		}
	}
	return doc, nil
}

// jsonKey lower-cases the first letter of an element tag.
func jsonKey(tag string) string {
	if tag == "" {
		return tag
	}
	return strings.ToLower(tag[:1]) + tag[1:]
}
