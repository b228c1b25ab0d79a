// Package questionfile persists the question bank as a plain-text file,
// one pipe-delimited question per line:
//
//	question|option1|option2|option3|option4|correct_answer
package questionfile

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"arcade-score-service/internal/domain"
)

// Store reads and appends bank rows. Writers are serialized by a mutex;
// readers see the file as of their read, which may trail an in-flight
// append by one write.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// FetchAll parses the backing file in line order. Rows with fewer than
// six fields are dropped and logged, never returned as errors. A missing
// file maps to domain.ErrQuestionBankNotFound.
func (s *Store) FetchAll(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrQuestionBankNotFound
		}
		return nil, err
	}
	questions, dropped := domain.ParseQuestionRows(string(data))
	if dropped > 0 {
		log.Printf("question bank %s: dropped %d malformed line(s)", s.path, dropped)
	}
	if len(questions) == 0 {
		return nil, domain.ErrQuestionBankNotFound
	}
	return questions, nil
}

// Append writes raw rows verbatim to the end of the file, preceded by a
// newline separator so the last existing row is never extended. Row shape
// is not validated here; bad rows surface as dropped lines in FetchAll.
func (s *Store) Append(_ context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + strings.TrimRight(raw, "\n")); err != nil {
		return err
	}
	return f.Sync()
}
