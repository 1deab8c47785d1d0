//go:build linux

package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter serves MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(sender Sender, store *Store) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("pixelpop", &rootAdapter{}, &playerAdapter{
			sender: sender,
			store:  store,
		}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "pixelpop", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	sender Sender
	store  *Store
}

func (p *playerAdapter) send(msg CommandMsg) error {
	p.sender.Send(msg)
	return nil
}

func (p *playerAdapter) Next() error      { return p.send(CommandMsg{Action: ActionNext}) }
func (p *playerAdapter) Previous() error  { return p.send(CommandMsg{Action: ActionPrevious}) }
func (p *playerAdapter) Pause() error     { return p.send(CommandMsg{Action: ActionPause}) }
func (p *playerAdapter) PlayPause() error { return p.send(CommandMsg{Action: ActionPlayPause}) }
func (p *playerAdapter) Stop() error      { return p.send(CommandMsg{Action: ActionStop}) }
func (p *playerAdapter) Play() error      { return p.send(CommandMsg{Action: ActionPlay}) }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.send(CommandMsg{Action: ActionSeek, Offset: time.Duration(offset) * time.Microsecond})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.send(CommandMsg{Action: ActionSetPosition, Position: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.store.Load().Status {
	case StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case StatusPaused:
		return types.PlaybackStatusPaused, nil
	case StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.store.Load()
	if !snap.Loaded {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(trackID(snap.PageURL)),
		Length:  types.Microseconds(snap.Length.Microseconds()),
		Title:   snap.Title,
		Artist:  []string{snap.Channel},
		Url:     snap.PageURL,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.store.Load().Volume) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.send(CommandMsg{Action: ActionSetVolume, Volume: int(v*100 + 0.5)})
}

func (p *playerAdapter) Position() (int64, error) {
	return p.store.Load().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.store.Load().QueueLen > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.store.Load().QueueLen > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap := p.store.Load()
	return snap.Loaded || snap.QueueLen > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.store.Load().Length > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }
