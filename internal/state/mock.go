package state

import (
	"slices"
	"sync"
	"time"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu        sync.Mutex
	plays     []Play
	volume    int
	hasVolume bool
	recordErr error
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) RecordPlay(p Play) (Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return Play{}, m.recordErr
	}
	if p.PlayedAt.IsZero() {
		p.PlayedAt = time.Now()
	}
	m.plays = append(m.plays, p)
	return p, nil
}

func (m *Mock) RecentPlays(limit int) ([]Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.plays)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) GetVolume() (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, m.hasVolume, nil
}

func (m *Mock) SaveVolume(volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume, m.hasVolume = volume, true
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetRecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
}

func (m *Mock) Plays() []Play {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.plays)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
