package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS scores (
    id BIGSERIAL PRIMARY KEY,
    game_id TEXT NOT NULL,
    player TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
`

// PostgresStore implements ScoreStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveScore records a new score for the given game.
func (s *PostgresStore) SaveScore(ctx context.Context, gameID, player string, score int) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scores (game_id, player, score) VALUES ($1, $2, $3) RETURNING id`,
		gameID, player, score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game.
func (s *PostgresStore) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, game_id, player, score, created_at
		 FROM scores
		 WHERE game_id = $1
		 ORDER BY score DESC, id ASC
		 LIMIT $2`,
		gameID, clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ScoreEntry, error) {
		var e ScoreEntry
		err := row.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
func (s *PostgresStore) HighScore(ctx context.Context, gameID string) (int, error) {
	var score int
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = $1`,
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *PostgresStore) GameStats(ctx context.Context, gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8,
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = $1`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed != nil {
		stats.LastPlayed = *lastPlayed
	}
	return stats, nil
}

// AllGamesStats retrieves statistics for all games that have been played.
func (s *PostgresStore) AllGamesStats(ctx context.Context) (map[string]*GameStats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT game_id, COUNT(*), MAX(score), AVG(score)::float8, SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &gs.LastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearScores deletes all scores for the given game.
func (s *PostgresStore) ClearScores(ctx context.Context, gameID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM scores WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var _ ScoreStore = (*PostgresStore)(nil)
