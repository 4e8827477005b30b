package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		store := newTestStore(t)

		var mode string
		err := store.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})
}

func TestStore_SaveLesson(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveLesson(ctx, "2026-08-29", "Daily Life", 6, `{"theme":"Daily Life"}`))

	content, err := store.LessonJSON(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"Daily Life"}`, content)

	t.Run("same-day rerun overwrites", func(t *testing.T) {
		require.NoError(t, store.SaveLesson(ctx, "2026-08-29", "Office Communication", 8, `{"theme":"Office Communication"}`))

		content, err := store.LessonJSON(ctx, "2026-08-29")
		require.NoError(t, err)
		assert.Equal(t, `{"theme":"Office Communication"}`, content)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Total)
	})
}

func TestStore_LessonJSON_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LessonJSON(context.Background(), "1999-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_HasLesson(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	has, err := store.HasLesson(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.SaveLesson(ctx, "2026-08-29", "Daily Life", 6, "{}"))

	has, err = store.HasLesson(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestStore_MostRecent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("empty archive", func(t *testing.T) {
		_, _, err := store.MostRecent(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("latest date wins", func(t *testing.T) {
		require.NoError(t, store.SaveLesson(ctx, "2026-08-10", "a", 1, "old"))
		require.NoError(t, store.SaveLesson(ctx, "2026-08-29", "b", 1, "new"))
		require.NoError(t, store.SaveLesson(ctx, "2026-08-20", "c", 1, "middle"))

		date, content, err := store.MostRecent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-29", date)
		assert.Equal(t, "new", content)
	})
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveLesson(ctx, "2026-08-27", "Daily Life", 6, "{}"))
	require.NoError(t, store.SaveLesson(ctx, "2026-08-28", "Daily Life", 6, "{}"))
	require.NoError(t, store.SaveLesson(ctx, "2026-08-29", "Office Communication", 8, "{}"))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, "2026-08-27", stats.FirstDate)
	assert.Equal(t, "2026-08-29", stats.LastDate)
	assert.Equal(t, map[string]int{"Daily Life": 2, "Office Communication": 1}, stats.ThemeCount)
}
