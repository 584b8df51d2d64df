package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

// Available themes
var (
	ThemeFestival = Theme{
		Name:      "festival",
		Primary:   lipgloss.Color("#ff6347"), // the grid-dot tomato
		Secondary: lipgloss.Color("#ffd700"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#f5f5f5"),
		Muted:     lipgloss.Color("#8a7a6a"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
	}
)

var themes = []Theme{ThemeFestival, ThemeRetroGreen, ThemeMinimal}

// CurrentTheme is the active color scheme.
var CurrentTheme = ThemeFestival

// SetTheme switches the active theme by name; unknown names are
// ignored.
func SetTheme(name string) {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return
		}
	}
}

// NextTheme cycles to the following theme.
func NextTheme() {
	for i, t := range themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = themes[(i+1)%len(themes)]
			return
		}
	}
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
