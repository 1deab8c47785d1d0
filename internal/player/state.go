package player

// State represents the engine's playback state machine.
//
//	┌──────────┐   load    ┌──────────┐   pause   ┌──────────┐
//	│   Idle   │ ─────────▶│  Playing │ ─────────▶│  Paused  │
//	└──────────┘           └──────────┘ ◀──────── └──────────┘
//	                           │   ▲        play
//	                 end/stop  │   │ play (restart)
//	                           ▼   │
//	                       ┌──────────┐
//	                       │ Stopped  │
//	                       └──────────┘
//
// Loading new media moves any state to Playing; a failed load leaves Idle.
type State int

const (
	Idle State = iota
	Playing
	Paused
	Stopped
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if Play has an effect in this state.
func (s State) CanResume() bool {
	return s == Idle || s == Paused || s == Stopped
}
