package memory

import (
	"context"
	"testing"
	"time"

	"arcade-score-service/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	source := &countingSource{
		QuestionSource: NewStaticQuestionRepository([]domain.Question{sampleQuestion()}),
	}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if source.fetches != 1 {
		t.Fatalf("expected source read once, got %d", source.fetches)
	}

	if _, err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch 2: %v", err)
	}
	if source.fetches != 1 {
		t.Fatalf("expected cache hit, source reads %d", source.fetches)
	}
}

func TestQuestionCacheInvalidatesOnAppend(t *testing.T) {
	source := &countingSource{
		QuestionSource: NewStaticQuestionRepository([]domain.Question{sampleQuestion()}),
	}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := cache.Append(context.Background(), "Capital of France?|London|Berlin|Paris|Rome|Paris"); err != nil {
		t.Fatalf("append: %v", err)
	}

	questions, err := cache.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch after append: %v", err)
	}
	if source.fetches != 2 {
		t.Fatalf("expected cache invalidated by append, source reads %d", source.fetches)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions after append, got %d", len(questions))
	}
}

type countingSource struct {
	QuestionSource
	fetches int
}

func (s *countingSource) FetchAll(ctx context.Context) ([]domain.Question, error) {
	s.fetches++
	return s.QuestionSource.FetchAll(ctx)
}

func sampleQuestion() domain.Question {
	return domain.Question{
		Text:          "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
	}
}
