package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/lastfm"
	"github.com/llehouerou/pixelpop/internal/mpris"
	"github.com/llehouerou/pixelpop/internal/notify"
	"github.com/llehouerou/pixelpop/internal/playback"
	"github.com/llehouerou/pixelpop/internal/stderr"
	"github.com/llehouerou/pixelpop/internal/ui/queuepanel"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if _, ok := msg.(RenderTickMsg); !ok {
		next.publish()
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RenderTickMsg:
		return m.handleRenderTick()

	case SyncTickMsg:
		return m.handleSyncTick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case playback.ResolvedMsg:
		return m.handleResolved(msg)

	case playback.ResolveFailedMsg:
		return m.handleResolveFailed(msg)

	case queuepanel.PlayIndexMsg:
		return m.playIndex(msg.Index)

	case TrackFinishedMsg:
		cmd := m.handleTrackEnded()
		return m, tea.Batch(cmd, m.watchFinished())

	case ImportedMsg:
		return m.handleImported(msg)

	case mpris.CommandMsg:
		return m.handleMPRIS(msg)

	case stderr.LineMsg:
		m.logger.Warn("stderr", zap.String("line", string(msg)))
		m.setError(string(msg))
		return m, stderr.WaitCmd(m.stderr)

	case notify.SentMsg:
		if msg.Err != nil {
			m.logger.Debug("notification failed", zap.Error(msg.Err))
			return m, nil
		}
		m.notifyID = msg.ID
		return m, nil

	case lastfm.NowPlayingResultMsg:
		if msg.Err != nil {
			m.logger.Warn("lastfm now playing failed", zap.Error(msg.Err))
		}
		return m, nil

	case lastfm.ScrobbleResultMsg:
		return m.handleScrobbleResult(msg)
	}

	return m, nil
}

// handleRenderTick advances the scene. The next tick is scheduled even if
// the tick panics.
func (m Model) handleRenderTick() (Model, tea.Cmd) {
	m.safely("render", func() {
		m.scene.Tick(m.ctrl.Playing())
	})
	return m, renderTickCmd()
}

// handleSyncTick refreshes the progress display and runs the periodic
// checks that depend on the position.
func (m Model) handleSyncTick() (Model, tea.Cmd) {
	cmds := []tea.Cmd{syncTickCmd()}
	m.safely("sync", func() {
		m.progress.Refresh(m.ctrl.Engine())
		cmds = append(cmds, m.handleTrackEnded(), m.checkScrobble())
	})
	return m, tea.Batch(cmds...)
}

// safely runs fn and logs a recovered panic.
func (m *Model) safely(loop string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("loop tick panicked",
				zap.String("loop", loop),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
		}
	}()
	fn()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	l := m.layout()
	m.scene.SetWidth(width)
	m.queuePanel.SetSize(l.queueWidth, l.panelHeight)
	m.historyPanel.SetSize(width-l.queueWidth, l.panelHeight)
}
