package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pixelpop/internal/errmsg"
	"github.com/llehouerou/pixelpop/internal/resolver"
)

// Status line texts.
const (
	msgEmptyQuery  = "Enter a video URL or ID"
	msgNotPlaylist = "Type a playlist URL in the query box, then press i"
	msgNoImporter  = "Playlist import is unavailable"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.popup != nil {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.popup = nil
		}
		return m, nil
	}

	if m.focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.blurInput()
		return m.playQuery(m.input.Value())
	case tea.KeyEsc:
		m.blurInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = FocusInput
	m.queuePanel.SetFocused(false)
	return m.input.Focus()
}

func (m *Model) blurInput() {
	m.focus = FocusMain
	m.input.Blur()
	m.queuePanel.SetFocused(true)
}

func (m Model) handleMainKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		cmd := m.focusInput()
		return m, cmd

	case key.Matches(msg, m.keys.Import):
		return m.importPlaylist(m.input.Value())

	case key.Matches(msg, m.keys.Previous):
		return m, m.ctrl.Previous()

	case key.Matches(msg, m.keys.Next):
		return m, m.ctrl.Next()

	case key.Matches(msg, m.keys.Resume):
		m.ctrl.Resume()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.ctrl.Pause()
		return m, nil

	case key.Matches(msg, m.keys.VolumeUp):
		m.setVolume(m.ctrl.Volume() + VolumeStep)
		return m, nil

	case key.Matches(msg, m.keys.VolumeDown):
		m.setVolume(m.ctrl.Volume() - VolumeStep)
		return m, nil

	case key.Matches(msg, m.keys.SeekBack):
		m.seekErr(m.ctrl.SeekBy(-SeekStep))
		return m, nil

	case key.Matches(msg, m.keys.SeekFwd):
		m.seekErr(m.ctrl.SeekBy(SeekStep))
		return m, nil

	case key.Matches(msg, m.keys.SeekJump):
		digit := float64(msg.Runes[0] - '0')
		m.seekErr(m.ctrl.SeekTo(digit * 10))
		return m, nil
	}

	var cmd tea.Cmd
	m.queuePanel, cmd = m.queuePanel.Update(msg)
	return m, cmd
}

func (m Model) playQuery(q string) (Model, tea.Cmd) {
	cmd, err := m.ctrl.PlayQuery(q)
	if errors.Is(err, resolver.ErrEmptyQuery) {
		m.setError(msgEmptyQuery)
		return m, nil
	}
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpResolve, err))
		return m, nil
	}
	m.setStatus("")
	return m, cmd
}

func (m Model) importPlaylist(url string) (Model, tea.Cmd) {
	url = strings.TrimSpace(url)
	switch {
	case m.importer == nil:
		m.setError(msgNoImporter)
		return m, nil
	case !resolver.IsPlaylistURL(url):
		m.setError(msgNotPlaylist)
		return m, nil
	case m.importing:
		return m, nil
	}
	m.importing = true
	m.setStatus("Importing playlist…")
	return m, importCmd(m.importer, url, m.cfg.ResolveTimeout())
}

func (m *Model) setVolume(v int) {
	v = m.ctrl.SetVolume(v)
	if m.history == nil {
		return
	}
	if err := m.history.SaveVolume(v); err != nil {
		m.setError(errmsg.Format(errmsg.OpVolumeSave, err))
	}
}

func (m *Model) seekErr(err error) {
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaybackSeek, err))
	}
}
