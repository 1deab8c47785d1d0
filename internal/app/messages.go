package app

import (
	"time"

	"github.com/llehouerou/pixelpop/internal/playlist"
)

// RenderTickMsg drives the scene animation.
type RenderTickMsg time.Time

// SyncTickMsg drives the progress display.
type SyncTickMsg time.Time

// TrackFinishedMsg is sent when the engine reaches the end of a stream.
type TrackFinishedMsg struct{}

// ImportedMsg carries the result of a playlist import.
type ImportedMsg struct {
	URL    string
	Tracks []playlist.Track
	Err    error
}
