// Package app contains the root bubbletea model. Every component is owned
// here and mutated only from Update.
package app

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/config"
	"github.com/llehouerou/pixelpop/internal/errmsg"
	"github.com/llehouerou/pixelpop/internal/lastfm"
	"github.com/llehouerou/pixelpop/internal/mpris"
	"github.com/llehouerou/pixelpop/internal/notify"
	"github.com/llehouerou/pixelpop/internal/playback"
	"github.com/llehouerou/pixelpop/internal/playlist"
	"github.com/llehouerou/pixelpop/internal/progress"
	"github.com/llehouerou/pixelpop/internal/scene"
	"github.com/llehouerou/pixelpop/internal/state"
	"github.com/llehouerou/pixelpop/internal/stderr"
	"github.com/llehouerou/pixelpop/internal/ui/historypanel"
	"github.com/llehouerou/pixelpop/internal/ui/playerbar"
	"github.com/llehouerou/pixelpop/internal/ui/popup"
	"github.com/llehouerou/pixelpop/internal/ui/queuepanel"
)

// Importer expands a playlist URL into queue entries.
type Importer interface {
	Import(ctx context.Context, url string) ([]playlist.Track, error)
}

// Options wires the model's collaborators. Only Config and Controller are
// required; a nil integration is disabled.
type Options struct {
	Config     *config.Config
	Controller *playback.Controller
	Importer   Importer
	History    state.Interface
	Notifier   notify.Notifier
	Scrobbler  lastfm.API
	MPRIS      *mpris.Store
	Stderr     <-chan string
	Rand       *rand.Rand
	Logger     *zap.Logger
}

// Focus is the component receiving keys.
type Focus int

const (
	FocusMain Focus = iota
	FocusInput
)

// Model is the root application model.
type Model struct {
	cfg       *config.Config
	ctrl      *playback.Controller
	importer  Importer
	history   state.Interface
	notifier  notify.Notifier
	scrobbler lastfm.API
	snapshot  *mpris.Store
	stderr    <-chan string
	logger    *zap.Logger

	scene        *scene.AnimationState
	progress     progress.Display
	bar          playerbar.Model
	input        textinput.Model
	queuePanel   queuepanel.Model
	historyPanel historypanel.Model
	keys         KeyMap

	focus     Focus
	popup     *popup.Dialog
	status    string
	statusErr bool
	scrobble  *lastfm.ScrobbleState
	notifyID  uint32
	importing bool

	width  int
	height int
}

// New creates the model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // animation only
	}

	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "video URL or ID (enter plays, i imports a playlist)"
	in.CharLimit = 512

	queuePanel := queuepanel.New(opts.Controller.Queue())
	queuePanel.SetFocused(true)

	m := Model{
		cfg:          opts.Config,
		ctrl:         opts.Controller,
		importer:     opts.Importer,
		history:      opts.History,
		notifier:     opts.Notifier,
		scrobbler:    opts.Scrobbler,
		snapshot:     opts.MPRIS,
		stderr:       opts.Stderr,
		logger:       logger,
		scene:        scene.New(rng),
		progress:     progress.NewDisplay(),
		bar:          playerbar.New(),
		input:        in,
		queuePanel:   queuePanel,
		historyPanel: historypanel.New(),
		keys:         DefaultKeyMap(),
	}
	m.refreshHistory()
	return m
}

// Init starts both loops and the background watches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		renderTickCmd(),
		syncTickCmd(),
		m.watchFinished(),
		stderr.WaitCmd(m.stderr),
	)
}

// refreshHistory reloads the history panel from the store.
func (m *Model) refreshHistory() {
	if m.history == nil {
		return
	}
	plays, err := m.history.RecentPlays(state.DefaultHistoryLimit)
	if err != nil {
		m.logger.Warn("load history", zap.Error(err))
		m.setError(errmsg.Format(errmsg.OpHistoryLoad, err))
		return
	}
	m.historyPanel.SetPlays(plays)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) showError(body string) {
	m.popup = &popup.Dialog{
		Title:  "Playback Error",
		Body:   body,
		Footer: "enter/esc: dismiss",
		Error:  true,
	}
}
