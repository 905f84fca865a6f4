package config

// Theme is the palette applied to marks and chrome
type Theme struct {
	Dark        bool
	Transparent bool
	Background  string
	Text        string
	Grid        string
	Accent      string
	Positive    string
	Negative    string
	Neutral     string
	Font        string
}

var (
	darkPalette = Theme{
		Dark:       true,
		Background: "#1a1a2e",
		Text:       "#e0e0e0",
		Grid:       "#2d2d44",
		Accent:     "#00d4aa",
		Positive:   "#22c55e",
		Negative:   "#ef4444",
		Neutral:    "#6b7280",
	}

	lightPalette = Theme{
		Background: "#ffffff",
		Text:       "#333333",
		Grid:       "#e5e7eb",
		Accent:     BrandAccent,
		Positive:   "#16a34a",
		Negative:   "#dc2626",
		Neutral:    "#9ca3af",
	}
)

// DeriveTheme picks the dark or light palette and applies explicit overrides
func DeriveTheme(opts Options) Theme {
	theme := lightPalette
	if opts.Dark {
		theme = darkPalette
	}

	theme.Font = defaultFont
	if opts.Font != "" {
		theme.Font = opts.Font
	}
	if opts.Color != "" {
		theme.Accent = opts.Color
	}
	if opts.Background != "" {
		theme.Background = opts.Background
	}
	theme.Transparent = opts.Transparent

	return theme
}

// CanvasBackground is the background value written into the document
func (t Theme) CanvasBackground() string {
	if t.Transparent {
		return "transparent"
	}
	return t.Background
}
