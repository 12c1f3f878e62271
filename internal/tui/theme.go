package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// hubbump palette.
var (
	hubAmberPrimary   = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	hubAmberBright    = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	hubTextStrong     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	hubTextMuted      = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	hubBorderNormal   = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	hubButtonBg       = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	hubButtonBgMuted  = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	hubButtonText     = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"}
	hubButtonTextDull = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

// currentTheme holds the configured theme for prompts.
// When nil, currentThemeOrDefault() returns hubbumpTheme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Empty or unknown names select the hubbump theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return hubbumpTheme()
	}
	return currentTheme
}

// resetTheme resets the current theme to the default. Used by tests.
func resetTheme() {
	currentTheme = nil
}

func hubbumpTheme() *huh.Theme {
	t := huh.ThemeBase()

	button := lipgloss.NewStyle().Padding(0, 1).MarginRight(1)

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(hubAmberPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(hubAmberPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(hubTextMuted)
	t.Focused.FocusedButton = button.
		Foreground(hubButtonText).
		Background(hubButtonBg).
		Bold(true)
	t.Focused.BlurredButton = button.
		Foreground(hubButtonTextDull).
		Background(hubButtonBgMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(hubAmberBright)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(hubTextStrong)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderForeground(hubBorderNormal)
	t.Blurred.Title = t.Focused.Title.Foreground(hubTextMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(hubAmberBright)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(hubTextMuted)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(hubBorderNormal)
	t.Help.FullKey = t.Help.FullKey.Foreground(hubAmberBright)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(hubTextMuted)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(hubBorderNormal)

	return t
}
