package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up scores table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM scores")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore_SaveAndTopScores(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	_, err := s.SaveScore(ctx, "frogger", "ann", 4)
	require.NoError(t, err)
	_, err = s.SaveScore(ctx, "frogger", "bob", 7)
	require.NoError(t, err)
	_, err = s.SaveScore(ctx, "frogger_strict", "ann", 1)
	require.NoError(t, err)

	scores, err := s.TopScores(ctx, "frogger", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "bob", scores[0].Player)
	assert.Equal(t, 7, scores[0].Score)
	assert.False(t, scores[0].CreatedAt.IsZero())
}

func TestPostgresStore_HighScoreEmpty(t *testing.T) {
	s := setupPostgresStore(t)

	high, err := s.HighScore(context.Background(), "frogger")
	require.NoError(t, err)
	assert.Equal(t, 0, high)
}

func TestPostgresStore_Stats(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	empty, err := s.GameStats(ctx, "frogger")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	s.SaveScore(ctx, "frogger", "a", 2)
	s.SaveScore(ctx, "frogger", "b", 4)

	stats, err := s.GameStats(ctx, "frogger")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 4, stats.HighScore)
	assert.InDelta(t, 3.0, stats.AvgScore, 0.001)
	assert.EqualValues(t, 6, stats.TotalScore)

	all, err := s.AllGamesStats(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, "frogger")
}

func TestPostgresStore_ClearScores(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	s.SaveScore(ctx, "frogger", "a", 2)
	s.SaveScore(ctx, "frogger_strict", "a", 3)

	require.NoError(t, s.ClearScores(ctx, "frogger"))

	classic, err := s.TopScores(ctx, "frogger", 10)
	require.NoError(t, err)
	assert.Empty(t, classic)

	strict, err := s.TopScores(ctx, "frogger_strict", 10)
	require.NoError(t, err)
	assert.Len(t, strict, 1)
}
