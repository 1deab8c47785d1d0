package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/pixelpop/internal/config"
	"github.com/llehouerou/pixelpop/internal/lastfm"
	"github.com/llehouerou/pixelpop/internal/mpris"
	"github.com/llehouerou/pixelpop/internal/notify"
	"github.com/llehouerou/pixelpop/internal/playback"
	"github.com/llehouerou/pixelpop/internal/player"
	"github.com/llehouerou/pixelpop/internal/playlist"
	"github.com/llehouerou/pixelpop/internal/progress"
	"github.com/llehouerou/pixelpop/internal/resolver"
	"github.com/llehouerou/pixelpop/internal/state"
	"github.com/llehouerou/pixelpop/internal/stderr"
	"github.com/llehouerou/pixelpop/internal/ui/queuepanel"
)

type fakeScrobbler struct {
	mu         sync.Mutex
	nowPlaying []lastfm.ScrobbleTrack
	scrobbled  []lastfm.ScrobbleTrack
}

func (f *fakeScrobbler) UpdateNowPlaying(t lastfm.ScrobbleTrack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nowPlaying = append(f.nowPlaying, t)
	return nil
}

func (f *fakeScrobbler) Scrobble(t lastfm.ScrobbleTrack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrobbled = append(f.scrobbled, t)
	return nil
}

type fakeNotifier struct {
	sent []notify.Notification
}

func (f *fakeNotifier) Notify(n notify.Notification) (uint32, error) {
	f.sent = append(f.sent, n)
	return 42, nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

type fakeImporter struct {
	tracks []playlist.Track
	err    error
}

func (f fakeImporter) Import(context.Context, string) ([]playlist.Track, error) {
	return f.tracks, f.err
}

type fixture struct {
	engine    *player.Mock
	res       *resolver.Mock
	history   *state.Mock
	notifier  *fakeNotifier
	scrobbler *fakeScrobbler
	snapshot  *mpris.Store
	cfg       *config.Config
}

func newFixture() *fixture {
	return &fixture{
		engine:    player.NewMock(),
		res:       resolver.NewMock(),
		history:   state.NewMock(),
		notifier:  &fakeNotifier{},
		scrobbler: &fakeScrobbler{},
		snapshot:  mpris.NewStore(),
		cfg:       &config.Config{},
	}
}

func (f *fixture) model(tracks ...playlist.Track) Model {
	ctrl := playback.New(f.engine, f.res, playlist.NewQueue(tracks...), 70, nil)
	return New(Options{
		Config:     f.cfg,
		Controller: ctrl,
		Importer:   fakeImporter{},
		History:    f.history,
		Notifier:   f.notifier,
		Scrobbler:  f.scrobbler,
		MPRIS:      f.snapshot,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
}

func threeTracks() []playlist.Track {
	return []playlist.Track{
		{Title: "Hype Boy", Source: "https://youtu.be/a"},
		{Title: "Ditto", Source: "https://youtu.be/b"},
		{Title: "OMG", Source: "https://youtu.be/c"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// play submits q through the query box and applies the resolution.
func play(t *testing.T, m Model, q string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(q)
	m, _ = send(t, m, runes("/"))
	m, cmd := send(t, m, enter)
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

// batchMsgs runs every command of a batch. Only use with commands that
// return immediately.
func batchMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, batchMsgs(c)...)
	}
	return out
}

func TestRenderTick_AdvancesAndReschedules(t *testing.T) {
	m := newFixture().model()
	before := m.scene.Phase

	m, cmd := send(t, m, RenderTickMsg{})
	assert.NotNil(t, cmd)
	assert.InDelta(t, before+0.12, m.scene.Phase, 1e-9)
}

func TestRenderTick_PanicStillReschedules(t *testing.T) {
	m := newFixture().model()
	m.scene = nil

	var cmd tea.Cmd
	require.NotPanics(t, func() {
		_, cmd = send(t, m, RenderTickMsg{})
	})
	assert.NotNil(t, cmd)
}

func TestSyncTick_UnknownLengthKeepsLabel(t *testing.T) {
	m := newFixture().model()

	for range 5 {
		var cmd tea.Cmd
		m, cmd = send(t, m, SyncTickMsg{})
		assert.NotNil(t, cmd)
	}
	assert.Equal(t, progress.Placeholder, m.progress.Label)
	assert.Zero(t, m.progress.Percent)
}

func TestSyncTick_UpdatesProgress(t *testing.T) {
	f := newFixture()
	m := f.model()
	f.engine.SetProgress(65*time.Second, 130*time.Second)

	m, _ = send(t, m, SyncTickMsg{})

	assert.Equal(t, "01:05 / 02:10", m.progress.Label)
	assert.InDelta(t, 50, m.progress.Percent, 1e-9)
}

func TestQuery_EmptyIsStatusError(t *testing.T) {
	f := newFixture()
	m := f.model()

	m.input.SetValue("   ")
	m, _ = send(t, m, runes("/"))
	assert.Equal(t, FocusInput, m.focus)

	m, cmd := send(t, m, enter)
	assert.Nil(t, cmd)
	assert.Equal(t, FocusMain, m.focus)
	assert.Equal(t, msgEmptyQuery, m.status)
	assert.True(t, m.statusErr)
	assert.Nil(t, m.popup)
	assert.Empty(t, f.res.Queries())
	assert.False(t, m.ctrl.Playing())
}

func TestQuery_PlaysRecordsAndAnnounces(t *testing.T) {
	f := newFixture()
	f.res.Set("abc123", resolver.Track{
		Title:     "Super Shy",
		Channel:   "NewJeans",
		Duration:  154 * time.Second,
		StreamURL: "https://stream/1",
		PageURL:   "https://www.youtube.com/watch?v=abc123",
	})
	m := f.model()

	m, cmd := play(t, m, "abc123")

	assert.True(t, m.ctrl.Playing())
	assert.Equal(t, "Now playing: Super Shy — NewJeans", m.ctrl.NowPlaying())

	plays := f.history.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "Super Shy", plays[0].Title)
	assert.Equal(t, "abc123", plays[0].Source)
	assert.Len(t, m.historyPanel.Plays(), 1)

	snap := f.snapshot.Load()
	assert.Equal(t, mpris.StatusPlaying, snap.Status)
	assert.Equal(t, "Super Shy", snap.Title)
	assert.True(t, snap.Loaded)

	msgs := batchMsgs(cmd)
	assert.Contains(t, msgs, notify.SentMsg{ID: 42})
	assert.Contains(t, msgs, lastfm.NowPlayingResultMsg{})
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Super Shy", f.notifier.sent[0].Title)
	require.Len(t, f.scrobbler.nowPlaying, 1)
	assert.Equal(t, "NewJeans", f.scrobbler.nowPlaying[0].Artist)

	m, _ = send(t, m, notify.SentMsg{ID: 42})
	assert.Equal(t, uint32(42), m.notifyID)
}

func TestResolveFailed_PopupUntilDismissed(t *testing.T) {
	f := newFixture()
	f.res.SetError(resolver.ErrNoStream)
	m := f.model()
	m.resize(80, 30)

	m.input.SetValue("broken")
	m, _ = send(t, m, runes("/"))
	m, cmd := send(t, m, enter)
	m, _ = send(t, m, cmd())

	require.NotNil(t, m.popup)
	assert.Contains(t, m.popup.Body, resolver.ErrNoStream.Error())
	assert.Contains(t, m.popup.Body, "'broken'")
	assert.Contains(t, ansi.Strip(m.View()), "Playback Error")
	assert.False(t, m.ctrl.Playing())
	assert.Empty(t, f.engine.LoadCalls())

	m, _ = send(t, m, runes("n"))
	assert.NotNil(t, m.popup, "keys are swallowed while the popup is open")
	assert.False(t, m.ctrl.Pending())

	m, _ = send(t, m, esc)
	assert.Nil(t, m.popup)
}

func TestEngineLoadError_Popup(t *testing.T) {
	f := newFixture()
	f.engine.SetLoadError(errors.New("exec: \"ffmpeg\": executable file not found"))
	m := f.model()

	m, _ = play(t, m, "abc123")

	require.NotNil(t, m.popup)
	assert.Contains(t, m.popup.Body, "start playback")
	assert.False(t, m.ctrl.Playing())
	assert.Empty(t, f.history.Plays())

	m, _ = send(t, m, enter)
	assert.Nil(t, m.popup)
}

func TestEngineLoadError_WhilePlayingDoesNotAdvance(t *testing.T) {
	f := newFixture()
	f.cfg.Playback.AutoAdvance = true
	m := f.model(threeTracks()...)

	m, cmd := send(t, m, runes("n"))
	m, _ = send(t, m, cmd())
	require.True(t, m.ctrl.Playing())
	require.Equal(t, 0, m.ctrl.Queue().Cursor())

	f.engine.SetLoadError(errors.New("audio device unavailable"))
	m, cmd = send(t, m, runes("n"))
	m, _ = send(t, m, cmd())
	require.NotNil(t, m.popup)
	assert.False(t, m.ctrl.Playing())
	assert.Empty(t, m.ctrl.NowPlaying())

	m, _ = send(t, m, SyncTickMsg{})
	assert.False(t, m.ctrl.Pending(), "no auto-advance after a failed load")
	assert.Equal(t, 1, m.ctrl.Queue().Cursor())
	assert.Equal(t, mpris.StatusStopped, f.snapshot.Load().Status)
}

func TestStaleResolutionIgnored(t *testing.T) {
	f := newFixture()
	m := f.model(threeTracks()...)

	m, first := send(t, m, runes("n"))
	m, second := send(t, m, runes("n"))
	older, newer := first(), second()

	m, _ = send(t, m, newer)
	m, _ = send(t, m, older)

	require.Len(t, f.engine.LoadCalls(), 1)
	assert.Equal(t, "Now playing: https://youtu.be/b — mock", m.ctrl.NowPlaying())
}

func TestTransportKeys(t *testing.T) {
	f := newFixture()
	m := f.model()
	m, _ = play(t, m, "abc123")
	f.engine.SetProgress(0, 100*time.Second)

	m, _ = send(t, m, space)
	assert.False(t, m.ctrl.Playing())
	assert.Equal(t, player.Paused, f.engine.State())

	m, _ = send(t, m, runes("p"))
	assert.True(t, m.ctrl.Playing())
	assert.Equal(t, player.Playing, f.engine.State())

	m, _ = send(t, m, runes("z"))
	assert.False(t, m.ctrl.Playing())

	m, _ = send(t, m, runes("+"))
	assert.Equal(t, 75, m.ctrl.Volume())
	v, ok, err := f.history.GetVolume()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 75, v)

	m, _ = send(t, m, runes("-"))
	m, _ = send(t, m, runes("-"))
	assert.Equal(t, 65, m.ctrl.Volume())

	m, _ = send(t, m, runes("5"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, []time.Duration{50 * time.Second, 55 * time.Second}, f.engine.SeekCalls())
	assert.Empty(t, m.status)
}

func TestVolumeClampedAtBounds(t *testing.T) {
	m := newFixture().model()

	for range 10 {
		m, _ = send(t, m, runes("+"))
	}
	assert.Equal(t, 100, m.ctrl.Volume())
}

func TestNextPrevious_Wrap(t *testing.T) {
	m := newFixture().model(threeTracks()...)

	m, cmd := send(t, m, runes("b"))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.ctrl.Queue().Cursor())
	assert.Equal(t, "https://youtu.be/c", cmd().(playback.ResolvedMsg).Query)

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 0, m.ctrl.Queue().Cursor())
	assert.Equal(t, 0, cmd().(playback.ResolvedMsg).Index)
}

func TestNext_EmptyQueueNoop(t *testing.T) {
	m := newFixture().model()

	m, cmd := send(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.ctrl.Pending())
}

func TestQueuePanel_EnterPlaysHighlighted(t *testing.T) {
	m := newFixture().model(threeTracks()...)
	m.resize(80, 40)

	m, _ = send(t, m, runes("j"))
	_, cmd := send(t, m, enter)
	require.NotNil(t, cmd)

	assert.Equal(t, queuepanel.PlayIndexMsg{Index: 1}, cmd())
}

func TestTrackEnded(t *testing.T) {
	tests := []struct {
		name        string
		autoAdvance bool
		wantPending bool
		wantCursor  int
	}{
		{"stops by default", false, false, 0},
		{"auto advance", true, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.cfg.Playback.AutoAdvance = tt.autoAdvance
			m := f.model(threeTracks()...)

			cmd, err := m.ctrl.PlayIndex(0)
			require.NoError(t, err)
			m, _ = send(t, m, cmd())
			require.True(t, m.ctrl.Playing())

			f.engine.SimulateFinished()
			m, _ = send(t, m, TrackFinishedMsg{})

			assert.False(t, m.ctrl.Playing())
			assert.Equal(t, tt.wantPending, m.ctrl.Pending())
			assert.Equal(t, tt.wantCursor, m.ctrl.Queue().Cursor())
		})
	}
}

func TestImport(t *testing.T) {
	f := newFixture()
	m := f.model()

	m, cmd := send(t, m, runes("i"))
	assert.Nil(t, cmd)
	assert.Equal(t, msgNotPlaylist, m.status)

	m.importer = fakeImporter{tracks: threeTracks()}
	m.input.SetValue("https://www.youtube.com/playlist?list=PL123")
	m, cmd = send(t, m, runes("i"))
	require.NotNil(t, cmd)
	assert.True(t, m.importing)

	m, _ = send(t, m, cmd())
	assert.False(t, m.importing)
	assert.Equal(t, 3, m.ctrl.Queue().Len())
	assert.Equal(t, "Imported 3 tracks", m.status)
}

func TestImport_ErrorPopup(t *testing.T) {
	m := newFixture().model()

	url := "https://www.youtube.com/playlist?list=PL123"
	m, _ = send(t, m, ImportedMsg{URL: url, Err: errors.New("playlist is private")})

	require.NotNil(t, m.popup)
	assert.Equal(t, "Failed to import playlist '"+url+"': playlist is private", m.popup.Body)
	assert.Equal(t, 0, m.ctrl.Queue().Len())
}

func TestMPRISCommands(t *testing.T) {
	f := newFixture()
	m := f.model(threeTracks()...)
	m, _ = play(t, m, "abc123")
	f.engine.SetProgress(10*time.Second, 100*time.Second)

	m, _ = send(t, m, mpris.CommandMsg{Action: mpris.ActionPlayPause})
	assert.False(t, m.ctrl.Playing())
	assert.Equal(t, mpris.StatusPaused, f.snapshot.Load().Status)

	m, _ = send(t, m, mpris.CommandMsg{Action: mpris.ActionPlay})
	assert.True(t, m.ctrl.Playing())

	m, _ = send(t, m, mpris.CommandMsg{Action: mpris.ActionSetVolume, Volume: 40})
	assert.Equal(t, 40, m.ctrl.Volume())
	assert.Equal(t, 40, f.snapshot.Load().Volume)

	m, _ = send(t, m, mpris.CommandMsg{Action: mpris.ActionSeek, Offset: 40 * time.Second})
	assert.Equal(t, []time.Duration{50 * time.Second}, f.engine.SeekCalls())

	m, _ = send(t, m, mpris.CommandMsg{Action: mpris.ActionStop})
	assert.False(t, m.ctrl.Playing())
	assert.Equal(t, player.Stopped, f.engine.State())
	assert.Equal(t, mpris.StatusStopped, f.snapshot.Load().Status)

	m, _ = send(t, m, SyncTickMsg{})
	assert.False(t, m.ctrl.Pending(), "stop is not treated as an end of track")

	_, cmd := send(t, m, mpris.CommandMsg{Action: mpris.ActionNext})
	require.NotNil(t, cmd)
	assert.IsType(t, playback.ResolvedMsg{}, cmd())
}

func TestScrobbleDueOnSyncTick(t *testing.T) {
	f := newFixture()
	f.res.Set("abc123", resolver.Track{Title: "ETA", Channel: "NewJeans", Duration: 200 * time.Second})
	m := f.model()
	m, _ = play(t, m, "abc123")

	f.engine.SetProgress(50*time.Second, 200*time.Second)
	m, _ = send(t, m, SyncTickMsg{})
	assert.False(t, m.scrobble.Scrobbled)

	f.engine.SetProgress(101*time.Second, 200*time.Second)
	m, _ = send(t, m, SyncTickMsg{})
	assert.True(t, m.scrobble.Scrobbled)

	m, _ = send(t, m, lastfm.ScrobbleResultMsg{Key: m.scrobble.Key, Err: errors.New("rate limited")})
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "scrobble")
}

func TestStderrLineShownAsStatus(t *testing.T) {
	m := newFixture().model()

	m, _ = send(t, m, stderr.LineMsg("ALSA lib pcm.c:8545: underrun occurred"))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "underrun")
}

func TestView_Layout(t *testing.T) {
	m := newFixture().model(threeTracks()...)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 32})

	out := ansi.Strip(m.View())
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 32)
	assert.Contains(t, out, "Nothing playing")
	assert.Contains(t, out, "Queue (0/3)")
	assert.Contains(t, out, "Recently played")
	assert.Contains(t, out, progress.Placeholder)
}

func TestView_TinyTerminal(t *testing.T) {
	m := newFixture().model()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 6})

	assert.NotPanics(t, func() { _ = m.View() })
}

func TestQuitKeys(t *testing.T) {
	m := newFixture().model()

	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQueryInput_TypingDoesNotTriggerTransport(t *testing.T) {
	f := newFixture()
	m := f.model(threeTracks()...)

	m, _ = send(t, m, runes("/"))
	for _, r := range "npq" {
		m, _ = send(t, m, runes(string(r)))
	}
	assert.Equal(t, FocusInput, m.focus)
	assert.Equal(t, "npq", m.input.Value())
	assert.Equal(t, -1, m.ctrl.Queue().Cursor())
}
