package tui

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no confirmation prompt. It defaults to no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	form := huh.NewForm(huh.NewGroup(confirm)).WithTheme(currentThemeOrDefault())
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// RunWithSpinner runs fn while a spinner titled title is shown. Without an
// interactive terminal fn runs plainly.
func RunWithSpinner(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if !IsInteractive() {
		return fn(ctx)
	}

	var fnErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { fnErr = fn(ctx) }).
		Run()
	if fnErr != nil {
		return fnErr
	}
	return err
}

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
	Spin(ctx context.Context, title string, fn func(ctx context.Context) error) error
}

// TUIPrompter implements Prompter with huh forms.
type TUIPrompter struct{}

// NewPrompter creates a new TUIPrompter.
func NewPrompter() Prompter {
	return &TUIPrompter{}
}

// Confirm implements Prompter.
func (p *TUIPrompter) Confirm(title, description string) (bool, error) {
	return Confirm(title, description)
}

// Spin implements Prompter.
func (p *TUIPrompter) Spin(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	return RunWithSpinner(ctx, title, fn)
}
