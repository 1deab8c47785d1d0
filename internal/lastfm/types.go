package lastfm

import "time"

// Scrobble rules: a track must be at least MinDuration long and is
// scrobbled after half its length or MaxThreshold, whichever comes first.
const (
	MinDuration  = 30 * time.Second
	MaxThreshold = 4 * time.Minute
)

// ScrobbleTrack contains track metadata for scrobbling. Remote streams
// carry no album, so the channel stands in for the artist.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Duration  time.Duration
	Timestamp time.Time // When playback started
}

// ScrobbleState tracks the scrobbling status of the current track.
type ScrobbleState struct {
	Track     ScrobbleTrack
	Key       string // play ID, for dedup
	Scrobbled bool
}

// Threshold returns the position at which a track of the given duration is
// scrobbled, or 0 if it is too short to scrobble.
func Threshold(duration time.Duration) time.Duration {
	if duration < MinDuration {
		return 0
	}
	return min(duration/2, MaxThreshold)
}

// Due reports whether the play has passed its threshold and has not been
// scrobbled yet.
func (s *ScrobbleState) Due(position time.Duration) bool {
	if s == nil || s.Scrobbled {
		return false
	}
	threshold := Threshold(s.Track.Duration)
	return threshold > 0 && position >= threshold
}
