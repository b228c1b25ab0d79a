package memory

import (
	"context"
	"sync"
	"time"

	"arcade-score-service/internal/domain"
)

// ScoreLedger is an in-memory implementation of app.ScoreLedger, used for
// tests and single-process demo deployments.
type ScoreLedger struct {
	mu      sync.RWMutex
	clock   func() time.Time
	records map[string]domain.ScoreRecord
}

func NewScoreLedger() *ScoreLedger {
	return NewScoreLedgerWithClock(time.Now)
}

// NewScoreLedgerWithClock allows deterministic timestamps in tests.
func NewScoreLedgerWithClock(now func() time.Time) *ScoreLedger {
	return &ScoreLedger{
		clock:   now,
		records: make(map[string]domain.ScoreRecord),
	}
}

func (l *ScoreLedger) Upsert(_ context.Context, playerName string, score, level int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.records[playerName]
	if ok && score <= existing.Score {
		return nil
	}
	l.records[playerName] = domain.ScoreRecord{
		PlayerName: playerName,
		Score:      score,
		Level:      level,
		LastPlayed: l.clock(),
	}
	return nil
}

func (l *ScoreLedger) TopN(_ context.Context, n int) ([]domain.ScoreRecord, error) {
	l.mu.RLock()
	records := make([]domain.ScoreRecord, 0, len(l.records))
	for _, record := range l.records {
		records = append(records, record)
	}
	l.mu.RUnlock()

	domain.SortByRank(records)
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}
