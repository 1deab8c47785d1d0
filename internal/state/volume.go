package state

import (
	"database/sql"
	"errors"
)

// GetVolume returns the saved volume. ok is false when none was saved.
func (m *Manager) GetVolume() (volume int, ok bool, err error) {
	row := m.db.QueryRow(`SELECT volume FROM player_state WHERE id = 1`)
	err = row.Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if volume < 0 {
		return 0, false, nil
	}
	return volume, true, nil
}

// SaveVolume persists the volume level (0-100).
func (m *Manager) SaveVolume(volume int) error {
	volume = max(0, min(100, volume))
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET volume = excluded.volume
	`, volume)
	return err
}
