package stderr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(ch <-chan string) []string {
	var out []string
	for l := range ch {
		out = append(out, l)
	}
	return out
}

func TestPump_SkipsBlankLines(t *testing.T) {
	out := make(chan string, bufferSize)
	pump(strings.NewReader("ALSA lib pcm.c: underrun\n\n   \n  second  \n"), out)

	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second"}, collect(out))
}

func TestPump_DropsWhenFull(t *testing.T) {
	out := make(chan string, 2)
	pump(strings.NewReader("a\nb\nc\nd\n"), out)

	assert.Equal(t, []string{"a", "b"}, collect(out))
}

func TestWaitCmd(t *testing.T) {
	assert.Nil(t, WaitCmd(nil))

	ch := make(chan string, 1)
	ch <- "underrun"
	cmd := WaitCmd(ch)
	assert.Equal(t, LineMsg("underrun"), cmd())

	close(ch)
	assert.Nil(t, cmd())
}
