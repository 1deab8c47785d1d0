package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	RecordPlay(p Play) (Play, error)
	RecentPlays(limit int) ([]Play, error)
	GetVolume() (int, bool, error)
	SaveVolume(volume int) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
