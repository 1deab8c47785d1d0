package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient,
// one color step per grapheme cluster.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	var b strings.Builder
	for i, cluster := range clusters {
		c := Blend(from, to, float64(i)/float64(len(clusters)-1))
		b.WriteString(lipgloss.NewStyle().Foreground(c).Bold(true).Render(cluster))
	}
	return b.String()
}

// Blend returns the color at position t in [0,1] between from and to.
// Blending is done in HCL space for perceptually uniform transitions.
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = max(0, min(1, t))
	c1, ok1 := parseHex(from)
	c2, ok2 := parseHex(to)
	if !ok1 || !ok2 {
		if t < 0.5 {
			return from
		}
		return to
	}
	return lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
}

func parseHex(c lipgloss.Color) (colorful.Color, bool) {
	hex := string(c)
	if len(hex) != 7 || hex[0] != '#' {
		return colorful.Color{}, false
	}
	col, err := colorful.Hex(hex)
	return col, err == nil
}
