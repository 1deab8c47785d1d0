// Package playback coordinates stream resolution, the queue and the audio
// engine. Every method runs on the UI loop; resolution itself runs in a
// tea.Cmd and reports back through ResolvedMsg or ResolveFailedMsg.
package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/pixelpop/internal/player"
	"github.com/llehouerou/pixelpop/internal/playlist"
	"github.com/llehouerou/pixelpop/internal/progress"
	"github.com/llehouerou/pixelpop/internal/resolver"
)

// ErrIndexOutOfRange is returned by PlayIndex for an invalid queue index.
var ErrIndexOutOfRange = errors.New("queue index out of range")

// NowPlayingFormat renders the now-playing label from title and channel.
const NowPlayingFormat = "Now playing: %s — %s"

// Current describes the media loaded into the engine.
type Current struct {
	Track     resolver.Track
	Query     string
	Index     int
	StartedAt time.Time
}

// Controller owns the playing flag, the volume and the now-playing label.
type Controller struct {
	engine   player.Interface
	resolver resolver.Resolver
	queue    *playlist.Queue
	logger   *zap.Logger

	volume     int
	playing    bool
	nowPlaying string
	current    *Current

	version      int
	pending      bool
	pendingLabel string
	now          func() time.Time
}

// New creates a controller. The volume is clamped to 0..100.
func New(
	engine player.Interface,
	res resolver.Resolver,
	queue *playlist.Queue,
	volume int,
	logger *zap.Logger,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queue == nil {
		queue = playlist.NewQueue()
	}
	return &Controller{
		engine:   engine,
		resolver: res,
		queue:    queue,
		logger:   logger,
		volume:   clampVolume(volume),
		now:      time.Now,
	}
}

// PlayQuery validates q and returns a command that resolves it.
// An empty query is rejected synchronously and changes nothing.
func (c *Controller) PlayQuery(q string) (tea.Cmd, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, resolver.ErrEmptyQuery
	}
	return c.resolve(q, -1), nil
}

// PlayIndex moves the cursor to i and resolves that entry.
func (c *Controller) PlayIndex(i int) (tea.Cmd, error) {
	if !c.queue.Select(i) {
		return nil, ErrIndexOutOfRange
	}
	return c.resolve(c.queue.At(i).Source, i), nil
}

// Next advances the cursor with wrap-around and plays that entry.
// Returns nil on an empty queue.
func (c *Controller) Next() tea.Cmd {
	i, ok := c.queue.Next()
	if !ok {
		return nil
	}
	cmd, _ := c.PlayIndex(i)
	return cmd
}

// Previous moves the cursor back with wrap-around and plays that entry.
// Returns nil on an empty queue.
func (c *Controller) Previous() tea.Cmd {
	i, ok := c.queue.Previous()
	if !ok {
		return nil
	}
	cmd, _ := c.PlayIndex(i)
	return cmd
}

// resolve bumps the request version and returns the background command.
// The command only reads its captured arguments.
func (c *Controller) resolve(query string, index int) tea.Cmd {
	c.version++
	c.pending = true
	c.pendingLabel = query
	if t := c.queue.At(index); t != nil && t.Title != "" {
		c.pendingLabel = t.Title
	}
	version := c.version
	res := c.resolver
	logger := c.logger

	return func() tea.Msg {
		track, err := res.Resolve(context.Background(), query)
		if err != nil {
			logger.Warn("resolve failed", zap.String("query", query), zap.Error(err))
			return ResolveFailedMsg{Version: version, Query: query, Err: err}
		}
		return ResolvedMsg{Version: version, Query: query, Index: index, Track: track}
	}
}

// IsStale reports whether a result belongs to a superseded request.
func (c *Controller) IsStale(version int) bool {
	return version != c.version
}

// Apply loads a resolved track into the engine. Stale results are ignored
// and return (nil, nil).
func (c *Controller) Apply(msg ResolvedMsg) (*Current, error) {
	if c.IsStale(msg.Version) {
		c.logger.Debug("dropping stale resolution",
			zap.Int("version", msg.Version),
			zap.Int("latest", c.version))
		return nil, nil //nolint:nilnil // stale result is not an error
	}
	c.pending = false

	err := c.engine.Load(player.Media{
		URL:      msg.Track.StreamURL,
		Title:    msg.Track.Title,
		Duration: msg.Track.Duration,
	})
	if err != nil {
		// The engine dropped whatever was playing before.
		c.playing = false
		c.nowPlaying = ""
		c.current = nil
		return nil, err
	}
	c.engine.SetVolume(c.volume)

	c.playing = true
	c.nowPlaying = fmt.Sprintf(NowPlayingFormat, msg.Track.Title, msg.Track.Channel)
	c.current = &Current{
		Track:     msg.Track,
		Query:     msg.Query,
		Index:     msg.Index,
		StartedAt: c.now(),
	}
	return c.current, nil
}

// Fail records a failed resolution. Returns false for stale failures,
// which the caller should not surface.
func (c *Controller) Fail(msg ResolveFailedMsg) bool {
	if c.IsStale(msg.Version) {
		return false
	}
	c.pending = false
	return true
}

// Pause pauses the engine and clears the playing flag.
func (c *Controller) Pause() {
	c.engine.Pause()
	c.playing = false
}

// Resume starts the engine unless it is already playing. The flag is set
// regardless of the engine state.
func (c *Controller) Resume() {
	if c.engine.State().CanResume() {
		c.engine.Play()
	}
	c.playing = true
}

// Stop halts the engine and clears the playing flag. The media stays
// loaded, so Resume restarts it from the beginning.
func (c *Controller) Stop() {
	c.engine.Stop()
	c.playing = false
}

// Toggle pauses when playing, resumes otherwise.
func (c *Controller) Toggle() {
	if c.playing {
		c.Pause()
		return
	}
	c.Resume()
}

// Stopped clears the playing flag after the engine reports the end of the
// stream. Returns true if the flag changed.
func (c *Controller) Stopped() bool {
	if !c.playing || c.engine.State() != player.Stopped {
		return false
	}
	c.playing = false
	return true
}

// SetVolume clamps v to 0..100, stores it and applies it to the engine.
func (c *Controller) SetVolume(v int) int {
	c.volume = clampVolume(v)
	c.engine.SetVolume(c.volume)
	return c.volume
}

// AdjustVolume changes the volume by delta.
func (c *Controller) AdjustVolume(delta int) int {
	return c.SetVolume(c.volume + delta)
}

// SeekTo seeks to pct percent of the track. No-op when the length is unknown.
func (c *Controller) SeekTo(pct float64) error {
	length := c.engine.Length()
	if length <= 0 {
		return nil
	}
	pos := progress.PositionAt(pct, length)
	if err := c.engine.SetPosition(pos); err != nil {
		return err
	}
	c.logger.Debug("seek", zap.Float64("percent", pct), zap.Duration("position", pos))
	return nil
}

// SeekBy moves the position by delta percent of the track.
func (c *Controller) SeekBy(deltaPct float64) error {
	length := c.engine.Length()
	if length <= 0 {
		return nil
	}
	return c.SeekTo(progress.Percent(c.engine.Position(), length) + deltaPct)
}

// Playing reports the playing flag the render loop animates from.
func (c *Controller) Playing() bool { return c.playing }

// Pending reports whether a resolution is in flight.
func (c *Controller) Pending() bool { return c.pending }

// PendingLabel names the request in flight: the queue title or the query.
func (c *Controller) PendingLabel() string { return c.pendingLabel }

// Volume returns the current volume, 0..100.
func (c *Controller) Volume() int { return c.volume }

// NowPlaying returns the now-playing label, empty before the first track.
func (c *Controller) NowPlaying() string { return c.nowPlaying }

// Current returns the track being played, or nil.
func (c *Controller) Current() *Current { return c.current }

// Queue returns the queue the controller advances through.
func (c *Controller) Queue() *playlist.Queue { return c.queue }

// Engine exposes the engine for the sync loop.
func (c *Controller) Engine() player.Interface { return c.engine }

func clampVolume(v int) int {
	return max(0, min(100, v))
}
