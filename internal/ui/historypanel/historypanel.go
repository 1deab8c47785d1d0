// Package historypanel lists recently played tracks.
package historypanel

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/pixelpop/internal/state"
	"github.com/llehouerou/pixelpop/internal/ui/render"
	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

// Model is the history panel.
type Model struct {
	plays  []state.Play
	width  int
	height int
	now    func() time.Time
}

// New creates an empty panel.
func New() Model {
	return Model{now: time.Now}
}

// SetPlays replaces the listed plays, newest first.
func (m *Model) SetPlays(plays []state.Play) {
	m.plays = plays
}

// Plays returns the listed plays.
func (m Model) Plays() []state.Play {
	return m.plays
}

// SetSize sets the panel dimensions including the border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the panel.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := styles.T().S()
	inner := max(m.width-2, 1)
	rows := max(m.height-4, 0)

	lines := make([]string, 0, rows)
	for _, p := range m.plays {
		if len(lines) == rows {
			break
		}
		ago := humanize.RelTime(p.PlayedAt, m.now(), "ago", "from now")
		title := p.Title
		if p.Channel != "" {
			title += " · " + p.Channel
		}
		left := render.Truncate(title, max(inner-lipgloss.Width(ago)-1, 1))
		gap := max(inner-lipgloss.Width(left)-lipgloss.Width(ago), 1)
		lines = append(lines, st.Base.Render(left)+strings.Repeat(" ", gap)+st.Muted.Render(ago))
	}
	if len(m.plays) == 0 && rows > 0 {
		lines = append(lines, st.Muted.Render(render.Fit("No plays yet", inner)))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	content := st.Title.Render(render.Fit("Recently played", inner)) + "\n" + st.Muted.Render(render.Separator(inner))
	if rows > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	return styles.PanelStyle(false).Width(inner).Render(content)
}
