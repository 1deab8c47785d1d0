package lastfm

import tea "github.com/charmbracelet/bubbletea"

// NowPlayingResultMsg contains the result of updating now playing.
type NowPlayingResultMsg struct {
	Err error
}

// ScrobbleResultMsg contains the result of a scrobble submission.
type ScrobbleResultMsg struct {
	Key string // To correlate with the play
	Err error
}

// NowPlayingCmd sends a "now playing" notification to Last.fm.
func NowPlayingCmd(api API, track ScrobbleTrack) tea.Cmd {
	return func() tea.Msg {
		return NowPlayingResultMsg{Err: api.UpdateNowPlaying(track)}
	}
}

// ScrobbleCmd submits a track play to Last.fm.
func ScrobbleCmd(api API, track ScrobbleTrack, key string) tea.Cmd {
	return func() tea.Msg {
		return ScrobbleResultMsg{Key: key, Err: api.Scrobble(track)}
	}
}
