package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette of the stats panel and the canvas background. The
// panel border is not part of it; that follows the orb's theme hue.
type Theme struct {
	Name       string
	Title      lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Title:      lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Title:      lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Title:      lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Title:      lipgloss.Color("#0077be"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns the named theme, or cyberpunk and false if there is none.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeCyberpunk, false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
