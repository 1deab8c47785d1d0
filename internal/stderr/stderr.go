//go:build !windows

// Package stderr captures output that C libraries (ALSA via the audio
// backend) write straight to file descriptor 2, so it cannot corrupt the
// TUI. Captured lines are surfaced as messages.
package stderr

import (
	"os"

	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
}

// Start redirects stderr. On error the process keeps its original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, lines: make(chan string, bufferSize)}
	go pump(r, c.lines)
	return c, nil
}

// Lines delivers captured lines. Closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.w.Close()
	c.r.Close()
}
