package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// Play resumes paused media, or restarts media that ended or was stopped.
// No-op when nothing was ever loaded or when already playing.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncEndedLocked()

	switch p.state {
	case Paused:
		if p.ctrl == nil {
			return
		}
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.state = Playing
	case Stopped:
		if !p.loaded {
			return
		}
		p.stopLocked()
		if err := p.startLocked(p.media.URL, 0, false); err != nil {
			p.logger.Error("engine restart failed", zap.Error(err))
			return
		}
		p.state = Playing
	case Idle, Playing:
	}
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncEndedLocked()

	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Stop halts playback and releases the stream; the media stays loaded.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.IsActive() {
		return
	}
	p.stopLocked()
	p.state = Stopped
}

// SetPosition seeks by restarting the transcoder at d. The paused state is
// preserved.
func (p *Player) SetPosition(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return ErrNotLoaded
	}
	if d < 0 {
		d = 0
	}
	if p.media.Duration > 0 && d > p.media.Duration {
		d = p.media.Duration
	}

	p.syncEndedLocked()
	paused := p.state == Paused
	p.stopLocked()
	if err := p.startLocked(p.media.URL, d, paused); err != nil {
		p.state = Stopped
		return fmt.Errorf("seek to %s: %w", d, err)
	}
	if !paused {
		p.state = Playing
	}
	p.logger.Debug("engine seek", zap.Duration("position", d))
	return nil
}
