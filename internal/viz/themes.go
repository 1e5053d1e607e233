package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the side panel.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Selected lipgloss.Color
	Chart    lipgloss.Color
	Muted    lipgloss.Color
}

var (
	ThemeFairway = Theme{
		Name:     "default",
		Title:    lipgloss.Color("#7fd67f"),
		Label:    lipgloss.Color("#8a9a8a"),
		Value:    lipgloss.Color("#e8f0e8"),
		Selected: lipgloss.Color("#ffd75f"),
		Chart:    lipgloss.Color("#5fd7af"),
		Muted:    lipgloss.Color("#4e5e4e"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Label:    lipgloss.Color("#4488aa"),
		Value:    lipgloss.Color("#e0f0ff"),
		Selected: lipgloss.Color("#ffd700"),
		Chart:    lipgloss.Color("#0077be"),
		Muted:    lipgloss.Color("#33556b"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Title:    lipgloss.Color("#ff6b6b"),
		Label:    lipgloss.Color("#8b6b8c"),
		Value:    lipgloss.Color("#fff5f5"),
		Selected: lipgloss.Color("#feca57"),
		Chart:    lipgloss.Color("#ff9ff3"),
		Muted:    lipgloss.Color("#5a405b"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Label:    lipgloss.Color("#888888"),
		Value:    lipgloss.Color("#ffffff"),
		Selected: lipgloss.Color("#0088ff"),
		Chart:    lipgloss.Color("#cccccc"),
		Muted:    lipgloss.Color("#555555"),
	}

	Themes = []Theme{ThemeFairway, ThemeOcean, ThemeSunset, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFairway
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
