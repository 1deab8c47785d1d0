package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/errmsg"
	"github.com/llehouerou/pixelpop/internal/mpris"
	"github.com/llehouerou/pixelpop/internal/playback"
	"github.com/llehouerou/pixelpop/internal/player"
	"github.com/llehouerou/pixelpop/internal/progress"
	"github.com/llehouerou/pixelpop/internal/state"
)

func (m Model) handleResolved(msg playback.ResolvedMsg) (Model, tea.Cmd) {
	cur, err := m.ctrl.Apply(msg)
	if err != nil {
		m.logger.Error("engine load failed", zap.String("query", msg.Query), zap.Error(err))
		m.setStatus("")
		m.showError(errmsg.FormatWith(errmsg.OpPlaybackStart, msg.Track.Title, err))
		return m, nil
	}
	if cur == nil {
		return m, nil
	}

	m.setStatus("")
	m.progress = progress.NewDisplay()
	m.queuePanel.Follow()
	m.recordPlay(cur)
	cmds := m.startIntegrations(cur)
	return m, tea.Batch(cmds...)
}

func (m Model) handleResolveFailed(msg playback.ResolveFailedMsg) (Model, tea.Cmd) {
	if !m.ctrl.Fail(msg) {
		return m, nil
	}
	m.setStatus("")
	m.showError(errmsg.FormatWith(errmsg.OpResolve, msg.Query, msg.Err))
	return m, nil
}

func (m Model) playIndex(i int) (Model, tea.Cmd) {
	cmd, err := m.ctrl.PlayIndex(i)
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.setStatus("")
	return m, cmd
}

// handleTrackEnded clears the playing flag once the engine reports the end
// of the stream, and advances the queue when configured to.
func (m *Model) handleTrackEnded() tea.Cmd {
	if !m.ctrl.Stopped() {
		return nil
	}
	m.logger.Info("track ended")
	if !m.cfg.Playback.AutoAdvance || m.ctrl.Queue().IsEmpty() {
		return nil
	}
	return m.ctrl.Next()
}

func (m Model) handleImported(msg ImportedMsg) (Model, tea.Cmd) {
	m.importing = false
	if msg.Err != nil {
		m.logger.Warn("playlist import failed", zap.String("url", msg.URL), zap.Error(msg.Err))
		m.setStatus("")
		m.showError(errmsg.FormatWith(errmsg.OpPlaylistImport, msg.URL, msg.Err))
		return m, nil
	}
	m.ctrl.Queue().Add(msg.Tracks...)
	m.logger.Info("playlist imported", zap.String("url", msg.URL), zap.Int("tracks", len(msg.Tracks)))
	m.setStatus(fmt.Sprintf("Imported %d tracks", len(msg.Tracks)))
	return m, nil
}

func (m Model) handleMPRIS(msg mpris.CommandMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case mpris.ActionPlay:
		m.ctrl.Resume()
	case mpris.ActionPause:
		m.ctrl.Pause()
	case mpris.ActionPlayPause:
		m.ctrl.Toggle()
	case mpris.ActionStop:
		m.ctrl.Stop()
	case mpris.ActionNext:
		return m, m.ctrl.Next()
	case mpris.ActionPrevious:
		return m, m.ctrl.Previous()
	case mpris.ActionSeek:
		engine := m.ctrl.Engine()
		m.seekErr(m.seekToPosition(engine.Position() + msg.Offset))
	case mpris.ActionSetPosition:
		m.seekErr(m.seekToPosition(msg.Position))
	case mpris.ActionSetVolume:
		m.setVolume(msg.Volume)
	}
	return m, nil
}

// seekToPosition seeks to an absolute position. No-op when the length is
// unknown.
func (m Model) seekToPosition(pos time.Duration) error {
	length := m.ctrl.Engine().Length()
	if length <= 0 {
		return nil
	}
	return m.ctrl.SeekTo(progress.Percent(pos, length))
}

func (m *Model) recordPlay(cur *playback.Current) {
	if m.history == nil {
		return
	}
	_, err := m.history.RecordPlay(state.Play{
		Title:    cur.Track.Title,
		Channel:  cur.Track.Channel,
		PageURL:  cur.Track.PageURL,
		Source:   cur.Query,
		Duration: cur.Track.Duration,
		PlayedAt: cur.StartedAt,
	})
	if err != nil {
		m.logger.Warn("record play", zap.Error(err))
		m.setError(errmsg.Format(errmsg.OpHistoryRecord, err))
		return
	}
	m.refreshHistory()
}

// publish hands MPRIS a snapshot of the current playback state.
func (m Model) publish() {
	if m.snapshot == nil {
		return
	}
	engine := m.ctrl.Engine()
	snap := mpris.Snapshot{
		Length:   engine.Length(),
		Position: engine.Position(),
		Volume:   m.ctrl.Volume(),
		QueueLen: m.ctrl.Queue().Len(),
	}
	switch engine.State() {
	case player.Playing:
		snap.Status = mpris.StatusPlaying
	case player.Paused:
		snap.Status = mpris.StatusPaused
	case player.Idle, player.Stopped:
		snap.Status = mpris.StatusStopped
	}
	if cur := m.ctrl.Current(); cur != nil {
		snap.Loaded = true
		snap.Title = cur.Track.Title
		snap.Channel = cur.Track.Channel
		snap.PageURL = cur.Track.PageURL
	}
	m.snapshot.Publish(snap)
}
