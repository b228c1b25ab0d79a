// Package redis implements the ledger and credential stores on a Redis
// key tree:
//
//	leaderboard:{player}  -> hash {score, level, last_played}
//	leaderboard:index     -> sorted set of player names by score
//	admin_users           -> hash {username: password_hash}
package redis

import (
	"context"
	"time"

	"arcade-score-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ScoreLedger is a Redis-backed implementation of app.ScoreLedger.
type ScoreLedger struct {
	client *redis.Client
	clock  func() time.Time
}

func NewScoreLedger(client *redis.Client) *ScoreLedger {
	return &ScoreLedger{client: client, clock: time.Now}
}

// NewScoreLedgerWithClock allows deterministic timestamps in tests.
func NewScoreLedgerWithClock(client *redis.Client, now func() time.Time) *ScoreLedger {
	return &ScoreLedger{client: client, clock: now}
}

// Upsert runs under WATCH on the player key so concurrent improvements to
// the same record serialize; last committed write wins.
func (l *ScoreLedger) Upsert(ctx context.Context, playerName string, score, level int) error {
	key := l.recordKey(playerName)
	return l.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "score").Int()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil && score <= current {
			return nil
		}

		lastPlayed := l.clock().UTC().Format(time.RFC3339Nano)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"score", score,
				"level", level,
				"last_played", lastPlayed,
			)
			pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(score), Member: playerName})
			return nil
		})
		return err
	}, key)
}

func (l *ScoreLedger) TopN(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	names, err := l.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	records := make([]domain.ScoreRecord, 0, len(names))
	for _, name := range names {
		fields, err := l.client.HGetAll(ctx, l.recordKey(name)).Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			// index entry without a record hash; skip rather than fail the read
			continue
		}
		records = append(records, recordFromHash(name, fields))
	}

	// Re-rank in Go so ties resolve identically across store backends.
	domain.SortByRank(records)
	return records, nil
}

const indexKey = "leaderboard:index"

func (l *ScoreLedger) recordKey(playerName string) string {
	return "leaderboard:" + playerName
}
