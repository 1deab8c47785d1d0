// Package mpris exposes the player over the MPRIS D-Bus interface.
//
// Method calls arrive on D-Bus goroutines and are forwarded to the UI loop
// as CommandMsg values. Property reads are answered from a Snapshot that the
// UI loop publishes after each update.
package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Status mirrors the MPRIS PlaybackStatus values.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// Snapshot is an immutable view of the player for property reads.
type Snapshot struct {
	Status   Status
	Title    string
	Channel  string
	PageURL  string
	Length   time.Duration
	Position time.Duration
	Volume   int // 0-100
	QueueLen int
	Loaded   bool
}

// Store holds the latest published snapshot.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current snapshot.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Load returns the current snapshot.
func (s *Store) Load() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Action is a transport request from an MPRIS client.
type Action int

const (
	ActionPlay Action = iota
	ActionPause
	ActionPlayPause
	ActionStop
	ActionNext
	ActionPrevious
	ActionSeek        // relative, Offset
	ActionSetPosition // absolute, Position
	ActionSetVolume   // Volume 0-100
)

// CommandMsg carries an MPRIS method call to the UI loop.
type CommandMsg struct {
	Action   Action
	Offset   time.Duration
	Position time.Duration
	Volume   int
}

// Sender delivers messages to the UI loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// trackID derives a stable D-Bus object path from the page URL.
func trackID(pageURL string) string {
	h := fnv.New64a()
	h.Write([]byte(pageURL))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
