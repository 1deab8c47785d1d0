package state

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS plays (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			channel TEXT,
			page_url TEXT,
			source TEXT NOT NULL,
			duration_ms INTEGER,
			played_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_plays_played_at ON plays(played_at DESC);

		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL DEFAULT -1
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
