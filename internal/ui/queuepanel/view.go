package queuepanel

import (
	"fmt"
	"strings"

	"github.com/llehouerou/pixelpop/internal/ui/render"
	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

const playingSymbol = "▶"

// View renders the panel.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := styles.T().S()
	inner := max(m.width-2, 1)
	height := m.listHeight()

	current := m.queue.Cursor() + 1
	header := st.Title.Render(render.Fit(fmt.Sprintf("Queue (%d/%d)", current, m.queue.Len()), inner))

	tracks := m.queue.Tracks()
	lines := make([]string, 0, height)
	start, end := m.cursor.Visible(len(tracks), height)
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.renderLine(idx, tracks[idx].Title, tracks[idx].Source, inner))
	}
	if len(tracks) == 0 && height > 0 {
		lines = append(lines, st.Muted.Render(render.Fit("Press i to import a playlist", inner)))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	content := header + "\n" + st.Muted.Render(render.Separator(inner))
	if height > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	return styles.PanelStyle(m.focused).Width(inner).Render(content)
}

func (m Model) renderLine(idx int, title, source string, width int) string {
	st := styles.T().S()
	playing := idx == m.queue.Cursor()

	prefix := "  "
	if playing {
		prefix = playingSymbol + " "
	}
	if title == "" {
		title = source
	}
	line := prefix + render.Fit(fmt.Sprintf("%d. %s", idx+1, title), width-2)

	switch {
	case m.focused && idx == m.cursor.Pos() && playing:
		return st.Cursor.Inherit(st.Playing).Render(line)
	case m.focused && idx == m.cursor.Pos():
		return st.Cursor.Render(line)
	case playing:
		return st.Playing.Render(line)
	}
	return st.Base.Render(line)
}
