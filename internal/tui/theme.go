package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentPrimary = lipgloss.AdaptiveColor{Light: "#6d28d9", Dark: "#a78bfa"}
	accentMuted   = lipgloss.AdaptiveColor{Light: "#a1a1aa", Dark: "#52525b"}
	buttonText    = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#18181b"}
)

// currentTheme holds the theme used by prompts.
// When nil, currentThemeOrDefault() returns defaultTheme().
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Empty or unknown names select the default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return defaultTheme()
	}
	return currentTheme
}

// defaultTheme is huh's base theme with a violet accent and padded buttons.
func defaultTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(accentPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(accentMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Padding(0, 1).
		Bold(true).
		Foreground(buttonText).
		Background(accentPrimary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
