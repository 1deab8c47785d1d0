package state

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := setupTestManager(t)
	require.NoError(t, initSchema(m.db))

	var version int
	require.NoError(t, m.db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestVolume_DefaultUnset(t *testing.T) {
	m := setupTestManager(t)

	_, ok, err := m.GetVolume()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVolume_SaveAndGet(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.SaveVolume(40))
	require.NoError(t, m.SaveVolume(65))

	v, ok, err := m.GetVolume()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 65, v)
}

func TestVolume_Clamped(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.SaveVolume(250))
	v, _, err := m.GetVolume()
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestRecordPlay_FillsIDAndTime(t *testing.T) {
	m := setupTestManager(t)

	p, err := m.RecordPlay(Play{Title: "Ditto", Source: "https://youtu.be/x"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.PlayedAt.IsZero())

	p2, err := m.RecordPlay(Play{Title: "Ditto", Source: "https://youtu.be/x"})
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, p2.ID)
}

func TestRecentPlays_OrderAndLimit(t *testing.T) {
	m := setupTestManager(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"a", "b", "c", "d"} {
		_, err := m.RecordPlay(Play{
			Title:    title,
			Channel:  "NewJeans",
			Source:   "src-" + title,
			Duration: time.Duration(i+1) * time.Minute,
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	plays, err := m.RecentPlays(3)
	require.NoError(t, err)
	require.Len(t, plays, 3)
	assert.Equal(t, "d", plays[0].Title)
	assert.Equal(t, "c", plays[1].Title)
	assert.Equal(t, "b", plays[2].Title)
	assert.Equal(t, 4*time.Minute, plays[0].Duration)
	assert.Equal(t, "NewJeans", plays[0].Channel)
	assert.True(t, plays[0].PlayedAt.Equal(base.Add(3*time.Minute)))
}

func TestRecentPlays_NullColumns(t *testing.T) {
	m := setupTestManager(t)
	_, err := m.db.Exec(`INSERT INTO plays (id, title, source, played_at) VALUES ('x', 't', 's', 1)`)
	require.NoError(t, err)

	plays, err := m.RecentPlays(0)
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Empty(t, plays[0].Channel)
	assert.Zero(t, plays[0].Duration)
}

func TestRecordPlay_PrunesOldest(t *testing.T) {
	m := setupTestManager(t)
	m.maxPlays = 2
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"a", "b", "c"} {
		_, err := m.RecordPlay(Play{Title: title, Source: title, PlayedAt: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	plays, err := m.RecentPlays(10)
	require.NoError(t, err)
	require.Len(t, plays, 2)
	assert.Equal(t, "c", plays[0].Title)
	assert.Equal(t, "b", plays[1].Title)
}

func TestWithTx_Rollback(t *testing.T) {
	m := setupTestManager(t)
	testErr := errors.New("test error")

	err := withTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO plays (id, title, source, played_at) VALUES ('x', 'a', 'b', 1)`); err != nil {
			return err
		}
		return testErr
	})
	require.ErrorIs(t, err, testErr)

	var count int
	require.NoError(t, m.db.QueryRow(`SELECT COUNT(*) FROM plays`).Scan(&count))
	assert.Zero(t, count)
}

func TestMock_RecentPlaysNewestFirst(t *testing.T) {
	m := NewMock()
	_, _ = m.RecordPlay(Play{Title: "a"})
	_, _ = m.RecordPlay(Play{Title: "b"})

	plays, err := m.RecentPlays(1)
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "b", plays[0].Title)
}
