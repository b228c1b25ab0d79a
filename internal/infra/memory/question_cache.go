package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"arcade-score-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionSource is the backing question bank the cache reads through
// (in production the flat-file store).
type QuestionSource interface {
	FetchAll(ctx context.Context) ([]domain.Question, error)
	Append(ctx context.Context, raw string) error
}

// QuestionCache caches the parsed question bank with a TTL so the facade
// does not re-read and re-parse the file on every fetch.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
	valid     bool
}

func NewQuestionCache(source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) FetchAll(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.valid && c.expiresAt.After(now) {
		questions := c.questions
		c.mu.RUnlock()
		return questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("bank", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.valid && c.expiresAt.After(now) {
			questions := c.questions
			c.mu.RUnlock()
			return questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.source.FetchAll(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.questions = questions
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.valid = true
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Append writes through to the source and invalidates the cache so the
// next fetch observes the new rows.
func (c *QuestionCache) Append(ctx context.Context, raw string) error {
	if err := c.source.Append(ctx, raw); err != nil {
		return err
	}
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
	return nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticQuestionRepository serves a fixed slice of questions (useful for
// tests and demos).
type StaticQuestionRepository struct {
	mu        sync.Mutex
	questions []domain.Question
}

func NewStaticQuestionRepository(questions []domain.Question) *StaticQuestionRepository {
	return &StaticQuestionRepository{questions: questions}
}

func (r *StaticQuestionRepository) FetchAll(_ context.Context) ([]domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.questions) == 0 {
		return nil, domain.ErrQuestionBankNotFound
	}
	out := make([]domain.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

func (r *StaticQuestionRepository) Append(_ context.Context, raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	questions, _ := domain.ParseQuestionRows(raw)
	r.questions = append(r.questions, questions...)
	return nil
}
