package tui

import "github.com/charmbracelet/huh"

// ValidThemes lists the prompt themes accepted by the theme setting.
// plain drops colors for terminals that render them poorly.
var ValidThemes = []string{"hubbump", "plain", "dracula"}

var themeBuilders = map[string]func() *huh.Theme{
	"hubbump": hubbumpTheme,
	"plain":   huh.ThemeBase,
	"dracula": huh.ThemeDracula,
}

// IsValidTheme reports whether name is one of ValidThemes.
func IsValidTheme(name string) bool {
	_, ok := themeBuilders[name]
	return ok
}

// GetTheme returns the prompt theme for name, or nil when name is unknown.
func GetTheme(name string) *huh.Theme {
	build, ok := themeBuilders[name]
	if !ok {
		return nil
	}
	return build()
}
