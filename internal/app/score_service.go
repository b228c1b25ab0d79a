package app

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"arcade-score-service/internal/domain"
)

// MaxPlayerNameLen bounds the leaderboard key; names are the sole identity.
const MaxPlayerNameLen = 50

// ScoreLedger abstracts the per-player best-score store (memory, Redis, Postgres).
type ScoreLedger interface {
	// Upsert creates the record on first sight of a player and otherwise
	// applies score/level/timestamp only on a strict score improvement.
	Upsert(ctx context.Context, playerName string, score, level int) error
	// TopN returns up to n records ranked for display; n <= 0 means all.
	TopN(ctx context.Context, n int) ([]domain.ScoreRecord, error)
}

// CredentialStore looks up admin password digests.
type CredentialStore interface {
	// PasswordHash returns the stored hex digest for username, or
	// domain.ErrUnknownAdmin when no credential exists.
	PasswordHash(ctx context.Context, username string) (string, error)
}

// QuestionRepository manages the pipe-delimited question bank.
type QuestionRepository interface {
	FetchAll(ctx context.Context) ([]domain.Question, error)
	// Append adds caller-supplied pipe-delimited rows verbatim; rows are
	// validated lazily at fetch time, not here.
	Append(ctx context.Context, raw string) error
}

// ScoreService contains the persistence-facade use cases.
type ScoreService struct {
	ledger    ScoreLedger
	creds     CredentialStore
	questions QuestionRepository
}

func NewScoreService(ledger ScoreLedger, creds CredentialStore, questions QuestionRepository) *ScoreService {
	return &ScoreService{ledger: ledger, creds: creds, questions: questions}
}

// SaveScore records a play result. The ledger keeps the best score per
// player; level and last_played change only together with a score
// improvement, so a non-improving save is a no-op.
func (s *ScoreService) SaveScore(ctx context.Context, playerName string, score, level int) error {
	if playerName == "" {
		return fmt.Errorf("%w: player_name is required", domain.ErrInvalidInput)
	}
	if len(playerName) > MaxPlayerNameLen {
		return fmt.Errorf("%w: player_name exceeds %d characters", domain.ErrInvalidInput, MaxPlayerNameLen)
	}
	if score < 0 {
		return fmt.Errorf("%w: score must not be negative", domain.ErrInvalidInput)
	}
	if level < 1 {
		return fmt.Errorf("%w: level must be positive", domain.ErrInvalidInput)
	}
	return s.ledger.Upsert(ctx, playerName, score, level)
}

// Leaderboard returns the ranked top-n projection of the ledger.
// n <= 0 falls back to the unbounded listing.
func (s *ScoreService) Leaderboard(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	return s.ledger.TopN(ctx, n)
}

// AdminLogin verifies one credential pair. There is no session or lockout;
// each call is an independent stateless check.
func (s *ScoreService) AdminLogin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	stored, err := s.creds.PasswordHash(ctx, username)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(HashPassword(password))) != 1 {
		return domain.ErrWrongPassword
	}
	return nil
}

// Questions returns the full question bank. Callers must treat
// domain.ErrQuestionBankNotFound as "no questions yet", not a fault.
func (s *ScoreService) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.FetchAll(ctx)
}

// UploadQuestions appends raw pipe-delimited rows to the bank. Row shape
// is not checked here; malformed rows are dropped when fetched.
func (s *ScoreService) UploadQuestions(ctx context.Context, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: no question rows provided", domain.ErrInvalidInput)
	}
	return s.questions.Append(ctx, raw)
}

// HashPassword returns the hex SHA-256 digest used for stored credentials.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
