// Package progress tracks the playback position shown in the transport bar.
package progress

import (
	"fmt"
	"time"
)

// Source reports the engine's timing. A length <= 0 means unknown.
type Source interface {
	Length() time.Duration
	Position() time.Duration
}

// Placeholder is shown until a length has been observed.
const Placeholder = "00:00 / 00:00"

// Display holds the last values pushed to the progress bar and time label.
// Values only change when the source reports a known length.
type Display struct {
	Percent float64
	Label   string
}

// NewDisplay returns a display showing the placeholder label.
func NewDisplay() Display {
	return Display{Label: Placeholder}
}

// Refresh polls src and updates the display. Returns false and leaves the
// display untouched when the length is unknown.
func (d *Display) Refresh(src Source) bool {
	length := src.Length()
	if length <= 0 {
		return false
	}
	pos := src.Position()
	d.Percent = Percent(pos, length)
	d.Label = FormatTime(pos) + " / " + FormatTime(length)
	return true
}

// Ratio returns Percent as a 0..1 fraction.
func (d Display) Ratio() float64 {
	return d.Percent / 100
}

// Percent returns pos as a percentage of length, clamped to [0,100].
func Percent(pos, length time.Duration) float64 {
	if length <= 0 {
		return 0
	}
	pct := float64(pos) / float64(length) * 100
	return max(0, min(100, pct))
}

// FormatTime floors d to whole seconds and renders MM:SS. Minutes are not
// wrapped into hours.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// PositionAt converts a percentage of length into a position.
func PositionAt(pct float64, length time.Duration) time.Duration {
	pct = max(0, min(100, pct))
	return time.Duration(pct / 100 * float64(length))
}
