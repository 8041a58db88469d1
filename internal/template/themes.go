package template

import "sort"

// Theme is a named color palette applied to every template through
// {theme_*} placeholders.
type Theme struct {
	Name          string
	Primary       string
	Secondary     string
	Background    string
	Text          string
	TextOnPrimary string
	Border        string
	Success       string
	Warning       string
	Danger        string
}

// Substitutions returns the placeholder map used during template filling.
func (t Theme) Substitutions() map[string]string {
	return map[string]string{
		"theme_name":            t.Name,
		"theme_primary":         t.Primary,
		"theme_secondary":       t.Secondary,
		"theme_background":      t.Background,
		"theme_text":            t.Text,
		"theme_text_on_primary": t.TextOnPrimary,
		"theme_border":          t.Border,
		"theme_success":         t.Success,
		"theme_warning":         t.Warning,
		"theme_danger":          t.Danger,
	}
}

// Palette returns the raw colors for the capabilities listing.
func (t Theme) Palette() map[string]string {
	return map[string]string{
		"primary":         t.Primary,
		"secondary":       t.Secondary,
		"background":      t.Background,
		"text":            t.Text,
		"text_on_primary": t.TextOnPrimary,
		"border":          t.Border,
		"success":         t.Success,
		"warning":         t.Warning,
		"danger":          t.Danger,
	}
}

var themes = map[string]Theme{
	"professional": {
		Name:          "professional",
		Primary:       "#0066CC",
		Secondary:     "#FF6B35",
		Background:    "#FFFFFF",
		Text:          "#1A1A1A",
		TextOnPrimary: "#FFFFFF",
		Border:        "#CCCCCC",
		Success:       "#28A745",
		Warning:       "#FFC107",
		Danger:        "#DC3545",
	},
	"bold": {
		Name:          "bold",
		Primary:       "#E31E24",
		Secondary:     "#FFD700",
		Background:    "#F5F5F5",
		Text:          "#000000",
		TextOnPrimary: "#FFFFFF",
		Border:        "#333333",
		Success:       "#00C853",
		Warning:       "#FF9100",
		Danger:        "#D50000",
	},
	"minimal": {
		Name:          "minimal",
		Primary:       "#2C3E50",
		Secondary:     "#95A5A6",
		Background:    "#FFFFFF",
		Text:          "#34495E",
		TextOnPrimary: "#FFFFFF",
		Border:        "#BDC3C7",
		Success:       "#27AE60",
		Warning:       "#F39C12",
		Danger:        "#E74C3C",
	},
	"playful": {
		Name:          "playful",
		Primary:       "#9C27B0",
		Secondary:     "#00BCD4",
		Background:    "#FFFDE7",
		Text:          "#424242",
		TextOnPrimary: "#FFFFFF",
		Border:        "#9E9E9E",
		Success:       "#8BC34A",
		Warning:       "#FF9800",
		Danger:        "#F44336",
	},
}

// GetTheme looks up a theme by name.
func GetTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists all theme names in a stable order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Themes lists every theme in name order.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, n := range ThemeNames() {
		out = append(out, themes[n])
	}
	return out
}
