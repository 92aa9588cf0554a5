package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// TUIPrompter implements Prompter with huh forms.
type TUIPrompter struct{}

// NewPrompter creates a new TUIPrompter.
func NewPrompter() Prompter {
	return &TUIPrompter{}
}

// Confirm shows a yes/no confirmation prompt.
func (p *TUIPrompter) Confirm(title, description string) (bool, error) {
	return Confirm(title, description)
}

// Confirm shows a yes/no confirmation prompt with the current theme.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		WithTheme(currentThemeOrDefault()).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// WithSpinner runs action while a spinner titled title is shown.
// The spinner is skipped when the terminal is not interactive.
func WithSpinner(title string, action func() error) error {
	if !IsInteractive() {
		return action()
	}

	var actionErr error
	if err := spinner.New().Title(title).Action(func() { actionErr = action() }).Run(); err != nil {
		return err
	}
	return actionErr
}
