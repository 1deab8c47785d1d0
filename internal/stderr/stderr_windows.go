//go:build windows

// Package stderr is a no-op on Windows, whose audio stack does not write to
// the process stderr.
package stderr

import "os"

// Capture is a no-op on Windows.
type Capture struct{}

// Start returns a capture that never yields lines.
func Start() (*Capture, error) {
	return &Capture{}, nil
}

// Lines returns nil so WaitCmd never schedules a watch.
func (c *Capture) Lines() <-chan string {
	return nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
