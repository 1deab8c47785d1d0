package playlist

// Queue wraps a Playlist with a selection cursor.
// The cursor is -1 when nothing is selected; otherwise it is always a valid index.
type Queue struct {
	playlist *Playlist
	cursor   int
}

// NewQueue creates a new empty queue.
func NewQueue(tracks ...Track) *Queue {
	q := &Queue{
		playlist: NewPlaylist(),
		cursor:   -1,
	}
	q.playlist.Add(tracks...)
	return q
}

// Cursor returns the selected index (-1 if none).
func (q *Queue) Cursor() int {
	return q.cursor
}

// Current returns the selected track, or nil if none.
func (q *Queue) Current() *Track {
	return q.playlist.Track(q.cursor)
}

// At returns the track at index, or nil if out of bounds.
func (q *Queue) At(index int) *Track {
	return q.playlist.Track(index)
}

// Select moves the cursor to index. Returns false and leaves the
// cursor untouched if index is out of bounds.
func (q *Queue) Select(index int) bool {
	if index < 0 || index >= q.playlist.Len() {
		return false
	}
	q.cursor = index
	return true
}

// Next moves the cursor forward, wrapping to 0 after the last track.
// An unset cursor moves to 0. Returns false on an empty queue.
func (q *Queue) Next() (int, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return -1, false
	}
	q.cursor = wrap(q.cursor+1, n)
	return q.cursor, true
}

// Previous moves the cursor backward, wrapping to the last track from 0.
// An unset cursor behaves like 0, so it lands on the last track.
// Returns false on an empty queue.
func (q *Queue) Previous() (int, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return -1, false
	}
	from := max(q.cursor, 0)
	q.cursor = wrap(from-1, n)
	return q.cursor, true
}

// Add appends tracks to the queue without moving the cursor.
func (q *Queue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
}

// Tracks returns all tracks in the queue.
func (q *Queue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
