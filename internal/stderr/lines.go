package stderr

import (
	"bufio"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const bufferSize = 100

// LineMsg carries one captured stderr line to the UI loop.
type LineMsg string

// pump copies non-blank lines from r to out until r is exhausted, then
// closes out. Lines are dropped while out is full.
func pump(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}

// WaitCmd waits for the next line. It returns nil once lines is closed,
// which ends the watch.
func WaitCmd(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return LineMsg(line)
	}
}
