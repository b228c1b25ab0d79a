package postgres

import (
	"context"
	"errors"
	"fmt"

	"arcade-score-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CredentialStore reads admin password digests from the admin_users table.
type CredentialStore struct {
	pool *pgxpool.Pool
}

func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

func (s *CredentialStore) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM admin_users WHERE username=$1`, username,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrUnknownAdmin
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	return hash, nil
}
