package memory

import (
	"context"
	"sync"

	"arcade-score-service/internal/domain"
)

// CredentialStore keeps admin password digests in memory. Credentials are
// seeded at construction; there is no runtime mutation path.
type CredentialStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewCredentialStore copies the given username -> hex digest map.
func NewCredentialStore(hashes map[string]string) *CredentialStore {
	copied := make(map[string]string, len(hashes))
	for username, hash := range hashes {
		copied[username] = hash
	}
	return &CredentialStore{hashes: copied}
}

func (s *CredentialStore) PasswordHash(_ context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashes[username]
	if !ok {
		return "", domain.ErrUnknownAdmin
	}
	return hash, nil
}
