package tui

import (
	"slices"
	"testing"
)

func TestIsValidTheme(t *testing.T) {
	for _, name := range ValidThemes {
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false, want true", name)
		}
		if GetTheme(name) == nil {
			t.Errorf("GetTheme(%q) returned nil", name)
		}
	}
	for _, name := range []string{"", "unknown", "HUBBUMP", "Dracula", "base", "charm", "catppuccin"} {
		if IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = true, want false", name)
		}
		if GetTheme(name) != nil {
			t.Errorf("GetTheme(%q) returned a theme", name)
		}
	}
	if !slices.Equal(ValidThemes, []string{"hubbump", "plain", "dracula"}) {
		t.Errorf("unexpected ValidThemes: %v", ValidThemes)
	}
	if len(themeBuilders) != len(ValidThemes) {
		t.Errorf("themeBuilders has %d entries, ValidThemes has %d", len(themeBuilders), len(ValidThemes))
	}
}

func TestSetTheme(t *testing.T) {
	defer resetTheme()

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("SetTheme(dracula) left no theme")
	}

	for _, name := range []string{"", "invalid-theme"} {
		SetTheme("dracula")
		SetTheme(name)
		if currentTheme != nil {
			t.Errorf("SetTheme(%q) should fall back to the default theme", name)
		}
		if currentThemeOrDefault() == nil {
			t.Errorf("currentThemeOrDefault() returned nil after SetTheme(%q)", name)
		}
	}

	SetTheme("plain")
	resetTheme()
	if currentTheme != nil || currentThemeOrDefault() == nil {
		t.Error("resetTheme() should restore the default theme")
	}
}
