package player

import "time"

// Media describes a resolved remote stream to load.
type Media struct {
	URL      string
	Title    string
	Duration time.Duration // 0 when unknown
}

// Interface defines the engine contract for dependency injection and testing.
type Interface interface {
	Load(m Media) error
	Play()
	Pause()
	Stop()
	State() State
	SetVolume(v int)
	Volume() int
	Length() time.Duration
	Position() time.Duration
	SetPosition(d time.Duration) error
	FinishedChan() <-chan struct{}
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
