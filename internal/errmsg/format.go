// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Resolution
	OpResolve        Op = "resolve track"
	OpPlaylistImport Op = "import playlist"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Persistence
	OpHistoryLoad   Op = "load play history"
	OpHistoryRecord Op = "record play"
	OpVolumeSave    Op = "save volume"

	// Integrations
	OpScrobble Op = "scrobble"
	OpNotify   Op = "send notification"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
