package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned when an operation requires authentication.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the subset of the Last.fm API used by the player.
type API interface {
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

// Client wraps the Last.fm API for scrobbling operations.
type Client struct {
	api        *lastfm.Api
	sessionKey string
}

// Verify Client implements API at compile time.
var _ API = (*Client)(nil)

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret)}
}

// SetSessionKey sets the authenticated session key.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

// IsAuthenticated returns true if a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// UpdateNowPlaying sends a "now playing" notification to Last.fm.
func (c *Client) UpdateNowPlaying(track ScrobbleTrack) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	_, err := c.api.Track.UpdateNowPlaying(track.params(false))
	if err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble submits a track play to Last.fm.
func (c *Client) Scrobble(track ScrobbleTrack) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	_, err := c.api.Track.Scrobble(track.params(true))
	if err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}

func (t ScrobbleTrack) params(withTimestamp bool) lastfm.P {
	p := lastfm.P{
		"artist": t.Artist,
		"track":  t.Track,
	}
	if withTimestamp {
		p["timestamp"] = t.Timestamp.Unix()
	}
	if t.Duration > 0 {
		p["duration"] = int(t.Duration.Seconds())
	}
	return p
}
