package redis

import (
	"context"

	"arcade-score-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const credentialsKey = "admin_users"

// CredentialStore reads admin password digests from the admin_users hash.
// The service never writes credentials; seeding happens out-of-band.
type CredentialStore struct {
	client *redis.Client
}

func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

func (s *CredentialStore) PasswordHash(ctx context.Context, username string) (string, error) {
	hash, err := s.client.HGet(ctx, credentialsKey, username).Result()
	if err == redis.Nil {
		return "", domain.ErrUnknownAdmin
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Seed stores a credential digest. Used by the seed-admin command and tests.
func (s *CredentialStore) Seed(ctx context.Context, username, passwordHash string) error {
	return s.client.HSet(ctx, credentialsKey, username, passwordHash).Err()
}
