package playlist

// Track describes a queue entry. Source is a video URL or a bare video ID.
type Track struct {
	Title  string
	Source string
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	t := p.tracks[index]
	return &t
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
