package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player.
type Mock struct {
	mu         sync.Mutex
	state      State
	media      Media
	volume     int
	position   time.Duration
	loadErr    error
	seekErr    error
	loadCalls  []Media
	playCalls  int
	seekCalls  []time.Duration
	finishedCh chan struct{}
	closed     bool
}

// NewMock creates a new idle mock engine.
func NewMock() *Mock {
	return &Mock{
		state:      Idle,
		volume:     100,
		finishedCh: make(chan struct{}, 1),
	}
}

func (m *Mock) Load(media Media) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, media)
	if m.loadErr != nil {
		m.media = Media{}
		m.position = 0
		m.state = Idle
		return m.loadErr
	}
	m.media = media
	m.position = 0
	m.state = Playing
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	switch m.state {
	case Paused:
		m.state = Playing
	case Stopped:
		if m.media.URL != "" {
			m.position = 0
			m.state = Playing
		}
	case Idle, Playing:
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsActive() {
		m.state = Stopped
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = max(0, min(100, v))
}

func (m *Mock) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Length() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.media.Duration
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) SetPosition(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, d)
	if m.seekErr != nil {
		return m.seekErr
	}
	if m.media.URL == "" {
		return ErrNotLoaded
	}
	m.position = d
	return nil
}

func (m *Mock) FinishedChan() <-chan struct{} {
	return m.finishedCh
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Idle
	return nil
}

// Test helpers

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

// SetProgress sets the reported position and length.
func (m *Mock) SetProgress(pos, length time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
	m.media.Duration = length
}

func (m *Mock) LoadCalls() []Media {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Media(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateFinished simulates the stream reaching its end.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Stopped
	}
	m.mu.Unlock()
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
