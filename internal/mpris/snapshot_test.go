package mpris

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStore_PublishLoad(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Snapshot{}, s.Load())

	snap := Snapshot{
		Status:   StatusPlaying,
		Title:    "Attention",
		Channel:  "NewJeans",
		Length:   3 * time.Minute,
		Position: 42 * time.Second,
		Volume:   80,
		Loaded:   true,
	}
	s.Publish(snap)
	assert.Equal(t, snap, s.Load())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Publish(Snapshot{Volume: i})
		}()
		go func() {
			defer wg.Done()
			_ = s.Load()
		}()
	}
	wg.Wait()
}

func TestTrackID_StableAndDistinct(t *testing.T) {
	a := trackID("https://www.youtube.com/watch?v=a")
	b := trackID("https://www.youtube.com/watch?v=b")

	assert.Equal(t, a, trackID("https://www.youtube.com/watch?v=a"))
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "/org/mpris/MediaPlayer2/Track/")
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

var _ Sender = (*recordingSender)(nil)
