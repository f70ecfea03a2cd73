package store

import (
	"context"
	"fmt"
	"hex/game"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func record(id string, ended time.Time) Record {
	return Record{
		ID:        id,
		Width:     3,
		Height:    3,
		Winner:    game.Red,
		Moves:     []game.Move{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}},
		StartedAt: ended.Add(-time.Minute),
		EndedAt:   ended,
	}
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("saving and loading a game", func(t *testing.T) {
		want := record("a", base)
		require.NoError(t, s.SaveGame(ctx, want))

		got, err := s.GetGame(ctx, "a")

		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("overwriting a game with the same id", func(t *testing.T) {
		updated := record("a", base)
		updated.Winner = game.Blue
		require.NoError(t, s.SaveGame(ctx, updated))

		got, err := s.GetGame(ctx, "a")

		require.NoError(t, err)
		require.Equal(t, game.Blue, got.Winner)
	})

	t.Run("missing game", func(t *testing.T) {
		_, err := s.GetGame(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejecting invalid records", func(t *testing.T) {
		require.Error(t, s.SaveGame(ctx, Record{}))
		require.ErrorIs(t, s.SaveGame(ctx, Record{ID: "x"}), game.ErrInvalidDimension)
	})

	t.Run("listing most recent first", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			require.NoError(t, s.SaveGame(ctx, record(fmt.Sprintf("g%d", i), base.Add(time.Duration(i)*time.Hour))))
		}

		got, err := s.ListGames(ctx, 2)

		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "g3", got[0].ID)
		require.Equal(t, "g2", got[1].ID)

		all, err := s.ListGames(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 4)
	})

	t.Run("clamping limits above the maximum", func(t *testing.T) {
		for i := 0; i < defaultListLimit+10; i++ {
			require.NoError(t, s.SaveGame(ctx, record(fmt.Sprintf("bulk%d", i), base.Add(-time.Duration(i+1)*time.Minute))))
		}

		got, err := s.ListGames(ctx, maxListLimit+1)

		require.NoError(t, err)
		require.Len(t, got, defaultListLimit+14, "A large limit returns everything up to the maximum")
		require.Equal(t, "g3", got[0].ID)
	})
}

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, defaultListLimit, normalizeLimit(0))
	require.Equal(t, defaultListLimit, normalizeLimit(-3))
	require.Equal(t, 100, normalizeLimit(100))
	require.Equal(t, maxListLimit, normalizeLimit(maxListLimit))
	require.Equal(t, maxListLimit, normalizeLimit(maxListLimit+1))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()
		exerciseStore(t, s)
	})

	t.Run("on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "hex.db")
		s, err := NewSQLiteStore(path)
		require.NoError(t, err)
		require.NoError(t, s.SaveGame(context.Background(), record("persisted", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))
		require.NoError(t, s.Close())

		reopened, err := NewSQLiteStore(path)
		require.NoError(t, err)
		defer reopened.Close()
		got, err := reopened.GetGame(context.Background(), "persisted")
		require.NoError(t, err)
		require.Len(t, got.Moves, 3)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewSQLiteStore("  ")
		require.Error(t, err)
	})
}

func TestPostgresStore(t *testing.T) {
	t.Run("empty dsn", func(t *testing.T) {
		_, err := NewPostgresStore("")
		require.Error(t, err)
	})
}

func TestDollarPlaceholders(t *testing.T) {
	require.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", dollarPlaceholders("SELECT a FROM t WHERE b = ? AND c = ?"))
}

func TestNew(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		s, mode, err := New(Config{})
		require.NoError(t, err)
		require.Equal(t, ModeMemory, mode)
		require.IsType(t, &MemoryStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, mode, err := New(Config{Mode: "SQLite3", SQLitePath: filepath.Join(t.TempDir(), "hex.db")})
		require.NoError(t, err)
		defer s.Close()
		require.Equal(t, ModeSQLite, mode)
		require.IsType(t, &SQLiteStore{}, s)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, mode, err := New(Config{Mode: "redis"})
		require.Error(t, err)
		require.Equal(t, "redis", mode)
	})
}
