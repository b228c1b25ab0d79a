package redis

import (
	"strconv"
	"time"

	"arcade-score-service/internal/domain"
)

func recordFromHash(playerName string, fields map[string]string) domain.ScoreRecord {
	record := domain.ScoreRecord{PlayerName: playerName, Level: 1}
	if v, err := strconv.Atoi(fields["score"]); err == nil {
		record.Score = v
	}
	if v, err := strconv.Atoi(fields["level"]); err == nil && v > 0 {
		record.Level = v
	}
	if t, err := time.Parse(time.RFC3339Nano, fields["last_played"]); err == nil {
		record.LastPlayed = t
	}
	return record
}
