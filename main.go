package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/app"
	"github.com/llehouerou/pixelpop/internal/config"
	"github.com/llehouerou/pixelpop/internal/errmsg"
	"github.com/llehouerou/pixelpop/internal/lastfm"
	"github.com/llehouerou/pixelpop/internal/mpris"
	"github.com/llehouerou/pixelpop/internal/notify"
	"github.com/llehouerou/pixelpop/internal/playback"
	"github.com/llehouerou/pixelpop/internal/player"
	"github.com/llehouerou/pixelpop/internal/playlist"
	"github.com/llehouerou/pixelpop/internal/resolver"
	"github.com/llehouerou/pixelpop/internal/state"
	"github.com/llehouerou/pixelpop/internal/stderr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		os.Exit(1)
	}

	fxApp := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			newLogger,
			newHistory,
			newEngine,
			newResolver,
			newController,
			newNotifier,
			newScrobbler,
			newProgram,
		),
		fx.Invoke(registerHooks),
	)
	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fxApp.Run()
}

// newLogger writes JSON logs to a file; the terminal belongs to the TUI.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// newHistory opens the state database, or returns nil when history is off.
func newHistory(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) state.Interface {
	if !cfg.HistoryEnabled() {
		return nil
	}
	mgr, err := state.Open()
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return nil
	}
	lc.Append(fx.StopHook(mgr.Close))
	return mgr
}

func newEngine(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) *player.Player {
	ec := cfg.GetEngineConfig()
	p := player.New(player.Config{FFmpeg: ec.FFmpeg, SampleRate: ec.SampleRate}, logger.Named("engine"))
	lc.Append(fx.StopHook(p.Close))
	return p
}

func newResolver(cfg *config.Config, logger *zap.Logger) *resolver.Service {
	rc := cfg.GetResolverConfig()
	var extractor resolver.Extractor
	switch rc.Backend {
	case config.BackendNative:
		extractor = resolver.NewNative()
	default:
		extractor = resolver.NewYTDLP(rc.Format, rc.Binary)
	}
	return resolver.NewService(extractor, cfg.ResolveTimeout(), logger.Named("resolver"))
}

func newController(
	cfg *config.Config,
	engine *player.Player,
	res *resolver.Service,
	history state.Interface,
	logger *zap.Logger,
) *playback.Controller {
	volume := cfg.InitialVolume()
	if history != nil {
		if saved, ok, err := history.GetVolume(); err != nil {
			logger.Warn("load saved volume", zap.Error(err))
		} else if ok {
			volume = saved
		}
	}

	entries := cfg.QueueEntries()
	tracks := make([]playlist.Track, len(entries))
	for i, e := range entries {
		tracks[i] = playlist.Track{Title: e.Title, Source: e.Source}
	}

	return playback.New(engine, res, playlist.NewQueue(tracks...), volume, logger.Named("playback"))
}

// newNotifier returns nil when notifications are off or D-Bus is unavailable.
func newNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	if !cfg.NotifyEnabled() {
		return nil
	}
	n, err := notify.New()
	if err != nil {
		logger.Warn("notifications unavailable", zap.Error(err))
		return nil
	}
	return n
}

func newScrobbler(cfg *config.Config) lastfm.API {
	if !cfg.HasLastfmConfig() {
		return nil
	}
	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	client.SetSessionKey(cfg.Lastfm.SessionKey)
	return client
}

// program bundles the bubbletea program with the integrations started for it.
type program struct {
	tea     *tea.Program
	capture *stderr.Capture
	mpris   *mpris.Adapter
	done    chan struct{}
}

func newProgram(
	cfg *config.Config,
	ctrl *playback.Controller,
	history state.Interface,
	notifier notify.Notifier,
	scrobbler lastfm.API,
	logger *zap.Logger,
) *program {
	capture, err := stderr.Start()
	if err != nil {
		logger.Warn("stderr capture unavailable", zap.Error(err))
	}
	var lines <-chan string
	if capture != nil {
		lines = capture.Lines()
	}

	store := mpris.NewStore()
	now := time.Now().UnixNano()
	model := app.New(app.Options{
		Config:     cfg,
		Controller: ctrl,
		Importer:   resolver.NewPlaylistImporter(),
		History:    history,
		Notifier:   notifier,
		Scrobbler:  scrobbler,
		MPRIS:      store,
		Stderr:     lines,
		Rand:       rand.New(rand.NewPCG(uint64(now), uint64(now>>32))), //nolint:gosec // animation jitter
		Logger:     logger.Named("app"),
	})

	p := &program{
		tea:     tea.NewProgram(model, tea.WithAltScreen()),
		capture: capture,
		done:    make(chan struct{}),
	}
	if p.mpris, err = mpris.New(p.tea, store); err != nil {
		logger.Warn("mpris unavailable", zap.Error(err))
	}
	return p
}

func registerHooks(lc fx.Lifecycle, sd fx.Shutdowner, p *program, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(p.done)
				if _, err := p.tea.Run(); err != nil {
					logger.Error("program exited", zap.Error(err))
					if p.capture != nil {
						p.capture.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
					}
					_ = sd.Shutdown(fx.ExitCode(1))
					return
				}
				_ = sd.Shutdown()
			}()
			logger.Info("pixelpop started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.tea.Quit()
			select {
			case <-p.done:
			case <-ctx.Done():
			}
			if p.mpris != nil {
				_ = p.mpris.Close()
			}
			if p.capture != nil {
				p.capture.Stop()
			}
			logger.Info("pixelpop stopped")
			return nil
		},
	})
}
