// Package queuepanel shows the play queue and lets the user pick an entry.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pixelpop/internal/playlist"
	"github.com/llehouerou/pixelpop/internal/ui/cursor"
)

// PlayIndexMsg asks the app to play the queue entry at Index.
type PlayIndexMsg struct {
	Index int
}

// overhead is border plus header plus separator.
const overhead = 4

// Model is the queue panel.
type Model struct {
	queue   *playlist.Queue
	cursor  cursor.Cursor
	width   int
	height  int
	focused bool
}

// New creates a panel over queue.
func New(queue *playlist.Queue) Model {
	return Model{queue: queue, cursor: cursor.New(1)}
}

// SetFocused sets whether the panel receives keys.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused reports whether the panel receives keys.
func (m Model) IsFocused() bool {
	return m.focused
}

// SetSize sets the panel dimensions including the border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cursor.Clamp(m.queue.Len(), m.listHeight())
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// Follow moves the highlight to the playing entry.
func (m *Model) Follow() {
	if i := m.queue.Cursor(); i >= 0 {
		m.cursor.Jump(i, m.queue.Len(), m.listHeight())
	}
}

// Update handles navigation keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	if m.cursor.HandleKey(key.String(), m.queue.Len(), m.listHeight()) {
		return m, nil
	}

	if key.String() == "enter" && !m.queue.IsEmpty() {
		idx := m.cursor.Pos()
		return m, func() tea.Msg { return PlayIndexMsg{Index: idx} }
	}
	return m, nil
}

func (m Model) listHeight() int {
	return max(m.height-overhead, 0)
}
