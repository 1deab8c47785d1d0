package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Backdrop checkerboard
	Bg  lipgloss.Color
	Bg2 lipgloss.Color

	// Cassette shell
	Panel     lipgloss.Color
	PanelDeep lipgloss.Color
	Window    lipgloss.Color
	Reel      lipgloss.Color
	ReelRim   lipgloss.Color
	Spoke     lipgloss.Color

	// Text hierarchy (most to least prominent)
	Ink     lipgloss.Color
	InkSoft lipgloss.Color

	// Accents
	Accent    lipgloss.Color // hot pink
	Accent2   lipgloss.Color // periwinkle
	Highlight lipgloss.Color
	Mint      lipgloss.Color
	Pink      lipgloss.Color
	Gold      lipgloss.Color

	// Status colors
	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Title   lipgloss.Style // Bold, bright
	Playing lipgloss.Style // Currently playing track
	Cursor  lipgloss.Style // Cursor background highlight
	Status  lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Bg:  lipgloss.Color("#140c44"),
	Bg2: lipgloss.Color("#201269"),

	Panel:     lipgloss.Color("#3a35b8"),
	PanelDeep: lipgloss.Color("#241b85"),
	Window:    lipgloss.Color("#697eff"),
	Reel:      lipgloss.Color("#ff7cd3"),
	ReelRim:   lipgloss.Color("#ffd5f3"),
	Spoke:     lipgloss.Color("#fff4fd"),

	Ink:     lipgloss.Color("#f6f7ff"),
	InkSoft: lipgloss.Color("#a9b8ff"),

	Accent:    lipgloss.Color("#ff68cc"),
	Accent2:   lipgloss.Color("#6d8cff"),
	Highlight: lipgloss.Color("#ffffff"),
	Mint:      lipgloss.Color("#8ff8ff"),
	Pink:      lipgloss.Color("#ffb0ef"),
	Gold:      lipgloss.Color("#ffe27a"),

	Error: lipgloss.Color("#ff5c8a"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.Ink)

	return &Styles{
		Base:  base,
		Muted: lipgloss.NewStyle().Foreground(t.InkSoft),
		Title: base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.PanelDeep).
			Foreground(t.Ink),
		Status: lipgloss.NewStyle().Foreground(t.Mint),
		Error:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}
