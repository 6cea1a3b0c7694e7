package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestStore_OpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sessions.db")
	s, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestStore_InsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	first := Session{
		StartedAt:   start,
		EndedAt:     start.Add(5 * time.Minute),
		Readings:    3000,
		MinNewtons:  0.12,
		MaxNewtons:  48.7,
		MeanNewtons: 12.3,
		ExportPath:  "FC2231_Force_Data_20260825_100500.csv",
	}
	second := Session{
		StartedAt:   start.Add(time.Hour),
		EndedAt:     start.Add(time.Hour + time.Minute),
		Readings:    600,
		MinNewtons:  1.0,
		MaxNewtons:  2.0,
		MeanNewtons: 1.5,
	}

	id1, err := s.InsertSession(ctx, first)
	require.NoError(t, err)
	id2, err := s.InsertSession(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	sessions, err := s.ListSessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// Newest first.
	assert.Equal(t, id2, sessions[0].ID)
	assert.Equal(t, id1, sessions[1].ID)

	got := sessions[1]
	assert.True(t, got.StartedAt.Equal(first.StartedAt))
	assert.True(t, got.EndedAt.Equal(first.EndedAt))
	assert.Equal(t, first.Readings, got.Readings)
	assert.Equal(t, first.MinNewtons, got.MinNewtons)
	assert.Equal(t, first.MaxNewtons, got.MaxNewtons)
	assert.Equal(t, first.MeanNewtons, got.MeanNewtons)
	assert.Equal(t, first.ExportPath, got.ExportPath)
	assert.Empty(t, sessions[0].ExportPath)
}

func TestStore_ListLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		_, err := s.InsertSession(ctx, Session{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i)*time.Hour + time.Minute),
			Readings:  i,
		})
		require.NoError(t, err)
	}

	sessions, err := s.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 4, sessions[0].Readings)
	assert.Equal(t, 3, sessions[1].Readings)
}

func TestStore_ListEmpty(t *testing.T) {
	s := openTestStore(t)

	sessions, err := s.ListSessions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.InsertSession(ctx, Session{StartedAt: time.Now(), EndedAt: time.Now(), Readings: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	sessions, err := s.ListSessions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
