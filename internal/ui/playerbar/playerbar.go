// Package playerbar renders the transport bar: now-playing label, progress
// bar, time label and volume.
package playerbar

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/pixelpop/internal/player"
	pos "github.com/llehouerou/pixelpop/internal/progress"
	"github.com/llehouerou/pixelpop/internal/ui/render"
	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// Height is the rendered height including the border.
const Height = 4

// State holds everything needed to render the bar.
type State struct {
	Engine     player.State
	NowPlaying string
	Resolving  string // query being resolved, if any
	Display    pos.Display
	Volume     int
}

// Model renders the bar. The zero value is not usable; call New.
type Model struct {
	bar progress.Model
}

// New creates a bar with the theme gradient.
func New() Model {
	t := styles.T()
	bar := progress.New(
		progress.WithGradient(string(t.Accent2), string(t.Accent)),
		progress.WithoutPercentage(),
	)
	bar.Full = '█'
	bar.Empty = '░'
	bar.EmptyColor = string(t.PanelDeep)
	return Model{bar: bar}
}

// Render returns the bar for the given total width.
func (m Model) Render(s State, width int) string {
	t := styles.T()
	st := t.S()
	inner := max(width-4, 1)

	status := stopSymbol
	switch s.Engine {
	case player.Playing:
		status = playSymbol
	case player.Paused:
		status = pauseSymbol
	case player.Idle, player.Stopped:
	}

	label := s.NowPlaying
	labelStyle := st.Playing
	if s.Resolving != "" {
		label = "Resolving " + s.Resolving + "…"
		labelStyle = st.Muted
	}
	if label == "" {
		label = "Nothing playing"
		labelStyle = st.Muted
	}

	vol := st.Status.Render(fmt.Sprintf("vol %3d%%", s.Volume))
	top := render.Row(
		st.Title.Render(status)+" "+labelStyle.Render(render.Truncate(label, inner-lipgloss.Width(vol)-3)),
		vol,
		inner,
	)

	timeLabel := st.Muted.Render(s.Display.Label)
	bar := m.bar
	bar.Width = max(inner-lipgloss.Width(timeLabel)-1, 1)
	bottom := bar.ViewAs(s.Display.Ratio()) + " " + timeLabel

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent2).
		Padding(0, 1).
		Width(inner + 2).
		Render(top + "\n" + bottom)
}
