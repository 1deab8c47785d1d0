package state

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of plays shown in the history panel.
const DefaultHistoryLimit = 5

// MaxPlays caps the stored history; older plays are pruned on insert.
const MaxPlays = 1000

// Play is one entry of the play history.
type Play struct {
	ID       string
	Title    string
	Channel  string
	PageURL  string
	Source   string
	Duration time.Duration
	PlayedAt time.Time
}

// RecordPlay appends a play to the history. A missing ID or timestamp is
// filled in; the stored play is returned.
func (m *Manager) RecordPlay(p Play) (Play, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PlayedAt.IsZero() {
		p.PlayedAt = time.Now()
	}

	err := withTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO plays (id, title, channel, page_url, source, duration_ms, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Title, p.Channel, p.PageURL, p.Source, p.Duration.Milliseconds(), p.PlayedAt.UnixMilli())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM plays WHERE id NOT IN (
				SELECT id FROM plays ORDER BY played_at DESC LIMIT ?
			)
		`, m.maxPlays)
		return err
	})
	if err != nil {
		return Play{}, err
	}
	return p, nil
}

// RecentPlays returns up to limit plays, most recent first.
func (m *Manager) RecentPlays(limit int) ([]Play, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := m.db.Query(`
		SELECT id, title, channel, page_url, source, duration_ms, played_at
		FROM plays
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var channel, pageURL sql.NullString
		var durationMs sql.NullInt64
		var playedAt int64

		err := rows.Scan(&p.ID, &p.Title, &channel, &pageURL, &p.Source, &durationMs, &playedAt)
		if err != nil {
			return nil, err
		}

		p.Channel = nullString(channel)
		p.PageURL = nullString(pageURL)
		p.Duration = time.Duration(nullInt64(durationMs)) * time.Millisecond
		p.PlayedAt = time.UnixMilli(playedAt)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}
