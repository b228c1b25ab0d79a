package domain

import (
	"sort"
	"time"
)

// ScoreRecord is the per-player entry in the score ledger. PlayerName is
// the sole identity; Score only ever increases.
type ScoreRecord struct {
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	LastPlayed time.Time `json:"last_played"`
}

// Question models one MCQ entry of the question bank, parsed from a
// pipe-delimited line: question|option1|option2|option3|option4|answer.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// AdminCredential pairs an admin username with the hex digest of its
// password. Provisioned out-of-band; read-only at runtime.
type AdminCredential struct {
	Username     string
	PasswordHash string
}

// SortByRank orders records for leaderboard display: score descending,
// then earliest LastPlayed, then player name. All store implementations
// share this comparator so rankings agree across backends.
func SortByRank(records []ScoreRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		if !records[i].LastPlayed.Equal(records[j].LastPlayed) {
			return records[i].LastPlayed.Before(records[j].LastPlayed)
		}
		return records[i].PlayerName < records[j].PlayerName
	})
}
