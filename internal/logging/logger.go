// Package logging provides the console log channel of csprojver: a
// charmbracelet/log logger on stderr with color-coded levels.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Level selects how much the console logger prints.
type Level int

const (
	// LevelQuiet prints errors only.
	LevelQuiet Level = iota
	// LevelNormal prints info and above.
	LevelNormal
	// LevelVerbose prints debug output.
	LevelVerbose
)

// customStyles colors each level so failures stand out in CI logs.
func customStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

// New returns a logger writing to w (stderr when nil) at the given level.
func New(w io.Writer, level Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "csprojver",
		Level:  toLogLevel(level),
	})
	logger.SetStyles(customStyles())
	return logger
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func toLogLevel(level Level) log.Level {
	switch level {
	case LevelQuiet:
		return log.ErrorLevel
	case LevelVerbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}
