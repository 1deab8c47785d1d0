// Package popup renders modal dialogs over the main view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/pixelpop/internal/ui/render"
	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

// Dialog is a bordered box with a title, a wrapped body and a footer hint.
type Dialog struct {
	Title  string
	Body   string
	Footer string
	Width  int // inner width; 0 = fit body
	Error  bool
}

// MaxWidth bounds auto-fit dialogs.
const MaxWidth = 60

// Box renders the dialog without positioning it.
func (d Dialog) Box(termWidth int) string {
	t := styles.T()
	s := t.S()

	inner := d.Width
	if inner == 0 {
		inner = max(lipgloss.Width(d.Title), lipgloss.Width(d.Footer), longestLine(d.Body))
		inner = min(inner, MaxWidth)
	}
	inner = max(min(inner, termWidth-4), 1)

	title := s.Title
	border := t.Accent
	if d.Error {
		title = s.Error
		border = t.Error
	}

	lines := make([]string, 0, 8)
	if d.Title != "" {
		lines = append(lines, render.Center(title.Render(render.Truncate(d.Title, inner)), inner), "")
	}
	body := lipgloss.NewStyle().Width(inner).Render(render.Sanitize(d.Body))
	lines = append(lines, s.Base.Render(body))
	if d.Footer != "" {
		lines = append(lines, "", render.Center(s.Muted.Render(d.Footer), inner))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(t.PanelDeep).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(lines, "\n"))
}

// Overlay draws the dialog centered over base.
func (d Dialog) Overlay(base string, width, height int) string {
	return Overlay(base, d.Box(width), width, height)
}

// Overlay places box at the center of base. base is padded to height lines.
func Overlay(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")

	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	top := max((len(baseLines)-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, l := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		line := baseLines[row]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		end := left + ansi.StringWidth(l)
		out := ansi.Cut(line, 0, left) + l
		if end < width {
			out += ansi.Cut(line, end, width)
		}
		baseLines[row] = out
	}
	return strings.Join(baseLines, "\n")
}

func longestLine(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
