package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/errmsg"
	"github.com/llehouerou/pixelpop/internal/lastfm"
	"github.com/llehouerou/pixelpop/internal/notify"
	"github.com/llehouerou/pixelpop/internal/playback"
)

// startIntegrations announces a new track to the desktop and Last.fm.
func (m *Model) startIntegrations(cur *playback.Current) []tea.Cmd {
	var cmds []tea.Cmd

	if m.notifier != nil {
		n := notify.NowPlaying(cur.Track.Title, cur.Track.Channel, m.notifyID)
		cmds = append(cmds, notify.SendCmd(m.notifier, n))
	}

	m.scrobble = nil
	if m.scrobbler != nil {
		track := lastfm.ScrobbleTrack{
			Artist:    cur.Track.Channel,
			Track:     cur.Track.Title,
			Duration:  cur.Track.Duration,
			Timestamp: cur.StartedAt,
		}
		m.scrobble = &lastfm.ScrobbleState{
			Track: track,
			Key:   cur.Track.PageURL + "@" + cur.StartedAt.String(),
		}
		cmds = append(cmds, lastfm.NowPlayingCmd(m.scrobbler, track))
	}
	return cmds
}

// checkScrobble submits the current play once it passes the threshold.
func (m *Model) checkScrobble() tea.Cmd {
	if m.scrobbler == nil || !m.scrobble.Due(m.ctrl.Engine().Position()) {
		return nil
	}
	m.scrobble.Scrobbled = true
	return lastfm.ScrobbleCmd(m.scrobbler, m.scrobble.Track, m.scrobble.Key)
}

func (m Model) handleScrobbleResult(msg lastfm.ScrobbleResultMsg) (Model, tea.Cmd) {
	if msg.Err == nil {
		m.logger.Info("scrobbled", zap.String("key", msg.Key))
		return m, nil
	}
	m.logger.Warn("scrobble failed", zap.String("key", msg.Key), zap.Error(msg.Err))
	m.setError(errmsg.Format(errmsg.OpScrobble, msg.Err))
	return m, nil
}
