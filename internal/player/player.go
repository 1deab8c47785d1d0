package player

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// ErrNotLoaded is returned by operations that need media when none is loaded.
var ErrNotLoaded = errors.New("no media loaded")

// DefaultSampleRate is used when the configuration leaves it unset.
const DefaultSampleRate = 44100

// opener starts a stream for url at offset. Replaced in tests.
type opener func(url string, offset time.Duration) (*stream, error)

// Player streams remote audio through ffmpeg into the beep speaker.
//
// Methods are called from the UI loop; the speaker goroutine only touches the
// current stream and the end-of-stream marker, never p.mu.
type Player struct {
	mu sync.Mutex

	state  State
	media  Media
	loaded bool
	stream *stream
	ctrl   *beep.Ctrl
	volume *effects.Volume

	volumeLevel int
	sampleRate  beep.SampleRate
	open        opener
	initSpeaker func(beep.SampleRate) error
	logger      *zap.Logger

	generation int64
	ended      atomic.Int64
	finishedCh chan struct{}
}

// Config configures the ffmpeg pipeline.
type Config struct {
	FFmpeg     string
	SampleRate int
}

var speakerOnce struct {
	sync.Mutex
	done bool
}

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Lock()
	defer speakerOnce.Unlock()
	if speakerOnce.done {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init audio device: %w", err)
	}
	speakerOnce.done = true
	return nil
}

// New creates an idle engine.
func New(cfg Config, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	rate := beep.SampleRate(cfg.SampleRate)
	stderr := &logWriter{logger: logger.Named("ffmpeg")}

	return &Player{
		state:       Idle,
		volumeLevel: 100,
		sampleRate:  rate,
		open: func(url string, offset time.Duration) (*stream, error) {
			return openFFmpeg(cfg.FFmpeg, url, offset, rate, stderr)
		},
		initSpeaker: initSpeaker,
		logger:      logger,
		finishedCh:  make(chan struct{}, 1),
	}
}

// Load replaces the current media and starts playing it from the beginning.
func (p *Player) Load(m Media) error {
	if m.URL == "" {
		return ErrNotLoaded
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.initSpeaker(p.sampleRate); err != nil {
		return err
	}

	p.stopLocked()

	if err := p.startLocked(m.URL, 0, false); err != nil {
		// The previous media is already torn down.
		p.media = Media{}
		p.loaded = false
		p.state = Idle
		p.logger.Error("engine load failed", zap.String("title", m.Title), zap.Error(err))
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	p.media = m
	p.loaded = true
	p.state = Playing
	p.logger.Info("engine loaded",
		zap.String("title", m.Title),
		zap.Duration("duration", m.Duration))
	return nil
}

// startLocked opens a stream at offset and hands it to the speaker.
func (p *Player) startLocked(url string, offset time.Duration, paused bool) error {
	s, err := p.open(url, offset)
	if err != nil {
		return err
	}

	p.generation++
	gen := p.generation
	p.stream = s
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: paused}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel == 0,
	}

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		p.onStreamEnd(gen)
	})))
	return nil
}

// onStreamEnd runs on the speaker goroutine with the speaker lock held.
func (p *Player) onStreamEnd(gen int64) {
	p.ended.Store(gen)
	select {
	case p.finishedCh <- struct{}{}:
	default:
	}
}

// stopLocked detaches the current stream from the speaker and releases it.
func (p *Player) stopLocked() {
	if p.stream == nil {
		return
	}
	speaker.Clear()
	_ = p.stream.Close()
	p.stream = nil
	p.ctrl = nil
	p.volume = nil
}

// syncEndedLocked folds an end-of-stream notification into the state.
func (p *Player) syncEndedLocked() {
	if p.stream == nil || p.ended.Load() != p.generation {
		return
	}
	if p.state == Playing {
		if err := p.stream.Err(); err != nil {
			p.logger.Warn("stream ended with error", zap.Error(err))
		}
		p.state = Stopped
	}
}

// State returns the current engine state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncEndedLocked()
	return p.state
}

// Length returns the media duration, or 0 when unknown.
func (p *Player) Length() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return 0
	}
	return p.media.Duration
}

// Position returns the current media position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return 0
	}
	pos := p.stream.Position()
	if p.media.Duration > 0 && pos > p.media.Duration {
		pos = p.media.Duration
	}
	return pos
}

// FinishedChan signals when the current stream reaches its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// Close stops playback and releases the stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.loaded = false
	p.state = Idle
	return nil
}

// logWriter forwards ffmpeg's stderr lines to the log.
type logWriter struct {
	logger *zap.Logger
}

func (w *logWriter) Write(b []byte) (int, error) {
	w.logger.Warn(string(trimNewline(b)))
	return len(b), nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

var _ io.Writer = (*logWriter)(nil)
