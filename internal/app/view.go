package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/pixelpop/internal/ui/playerbar"
	"github.com/llehouerou/pixelpop/internal/ui/render"
	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

// Layout constants.
const (
	inputHeight    = 1
	statusHeight   = 1
	minPanelHeight = 5
	maxPanelHeight = 9
)

type layout struct {
	sceneHeight int
	panelHeight int // 0 hides the panels
	queueWidth  int
}

func (m Model) layout() layout {
	fixed := playerbar.Height + inputHeight + statusHeight
	free := max(m.height-fixed, 0)

	panel := min(free/3, maxPanelHeight)
	if panel < minPanelHeight {
		panel = 0
	}
	return layout{
		sceneHeight: free - panel,
		panelHeight: panel,
		queueWidth:  m.width * 3 / 5,
	}
}

// View renders the application.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	l := m.layout()
	parts := make([]string, 0, 5)
	if l.sceneHeight > 0 {
		parts = append(parts, m.scene.Render(m.width, l.sceneHeight, m.ctrl.Playing()))
	}
	if l.panelHeight > 0 {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, m.queuePanel.View(), m.historyPanel.View()))
	}
	parts = append(parts,
		m.bar.Render(m.barState(), m.width),
		m.input.View(),
		m.renderStatus(),
	)
	view := strings.Join(parts, "\n")

	if m.popup != nil {
		return m.popup.Overlay(view, m.width, m.height)
	}
	return view
}

func (m Model) barState() playerbar.State {
	s := playerbar.State{
		Engine:     m.ctrl.Engine().State(),
		NowPlaying: m.ctrl.NowPlaying(),
		Display:    m.progress,
		Volume:     m.ctrl.Volume(),
	}
	if m.ctrl.Pending() {
		s.Resolving = m.ctrl.PendingLabel()
	}
	return s
}

func (m Model) renderStatus() string {
	st := styles.T().S()
	if m.status != "" {
		style := st.Status
		if m.statusErr {
			style = st.Error
		}
		return style.Render(render.Truncate(m.status, m.width))
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return st.Muted.Render(render.Truncate(strings.Join(help, " · "), m.width))
}
