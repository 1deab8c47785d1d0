// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Urgency represents freedesktop notification priority levels.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// nowPlayingTimeout is how long a track notification stays up, in ms.
const nowPlayingTimeout = 5000

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }

// NowPlaying builds the track-change notification. replaces is the ID of the
// previous one so consecutive tracks reuse a single bubble.
func NowPlaying(title, channel string, replaces uint32) Notification {
	return Notification{
		Title:      title,
		Body:       escapeMarkup(channel),
		Icon:       "audio-x-generic",
		Timeout:    nowPlayingTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// SentMsg reports the result of a notification.
type SentMsg struct {
	ID  uint32
	Err error
}

// SendCmd sends n off the UI loop.
func SendCmd(notifier Notifier, n Notification) tea.Cmd {
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		return SentMsg{ID: id, Err: err}
	}
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeMarkup escapes the characters notification servers treat as markup.
func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
