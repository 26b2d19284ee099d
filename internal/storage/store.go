// Package storage persists high scores.
// Two backends share the ScoreStore interface: SQLite through the pure-Go
// modernc.org/sqlite driver (the default, no CGO) and PostgreSQL through pgx.
package storage

import (
	"context"
	"strings"
	"time"
)

// DefaultPath is the SQLite database used when no DSN is given.
const DefaultPath = "~/.arcade/frogger.db"

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game_id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string    `json:"game_id"`
	GamesCount int       `json:"games_count"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalScore int64     `json:"total_score"`
	LastPlayed time.Time `json:"last_played"`
}

// ScoreStore defines the interface for persistent score storage.
type ScoreStore interface {
	// SaveScore records a finished game and returns the new record ID.
	SaveScore(ctx context.Context, gameID, player string, score int) (int64, error)
	// TopScores returns the best scores for a game, highest first.
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)
	// HighScore returns the best score for a game, or 0 if none.
	HighScore(ctx context.Context, gameID string) (int, error)
	// GameStats returns aggregated statistics for a game.
	GameStats(ctx context.Context, gameID string) (*GameStats, error)
	// AllGamesStats returns statistics for every game that has scores.
	AllGamesStats(ctx context.Context) (map[string]*GameStats, error)
	// ClearScores deletes all scores for a game.
	ClearScores(ctx context.Context, gameID string) error
	// Close releases database resources.
	Close() error
}

// Open selects a backend from dsn: postgres:// and postgresql:// URLs use
// PostgreSQL, anything else is a SQLite file path. An empty dsn opens
// DefaultPath.
func Open(ctx context.Context, dsn string) (ScoreStore, error) {
	if isPostgresDSN(dsn) {
		pg, err := NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	if dsn == "" {
		dsn = DefaultPath
	}
	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// clampLimit applies the default page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
