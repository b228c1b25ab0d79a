package postgres

import (
	"context"
	"fmt"

	"arcade-score-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreLedger stores per-player best scores in the leaderboard table.
type ScoreLedger struct {
	pool *pgxpool.Pool
}

func NewScoreLedger(pool *pgxpool.Pool) *ScoreLedger {
	return &ScoreLedger{pool: pool}
}

// Upsert is a single INSERT .. ON CONFLICT statement, so the
// improve-only rule is enforced atomically per player row.
func (l *ScoreLedger) Upsert(ctx context.Context, playerName string, score, level int) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO leaderboard (player_name, score, level, last_played)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (player_name) DO UPDATE
		SET score = EXCLUDED.score, level = EXCLUDED.level, last_played = EXCLUDED.last_played
		WHERE leaderboard.score < EXCLUDED.score`,
		playerName, score, level,
	)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (l *ScoreLedger) TopN(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	query := `
		SELECT player_name, score, level, last_played
		FROM leaderboard
		ORDER BY score DESC, last_played ASC, player_name ASC`
	args := []interface{}{}
	if n > 0 {
		query += ` LIMIT $1`
		args = append(args, n)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	defer rows.Close()

	var records []domain.ScoreRecord
	for rows.Next() {
		var record domain.ScoreRecord
		if err := rows.Scan(&record.PlayerName, &record.Score, &record.Level, &record.LastPlayed); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	return records, nil
}
