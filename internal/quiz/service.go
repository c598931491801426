package quiz

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is the persistence the service needs for quizzes. A scope with
// no stored questions for a date returns an empty slice.
type Store interface {
	QuizQuestions(ctx context.Context, scope Scope, date string) ([]Question, error)
	AddQuizQuestions(ctx context.Context, scope Scope, date string, questions []Question) error
}

// Service generates each quiz at most once per scope per calendar day.
// Concurrent views collapse to a single generation; a failed generation
// stores nothing, so the next view retries.
type Service struct {
	generator *Generator
	store     Store
	group     singleflight.Group
}

// NewService creates a quiz service.
func NewService(generator *Generator, store Store) *Service {
	return &Service{generator: generator, store: store}
}

// Ensure returns the quiz for a scope on the given day, generating and
// persisting it on first view.
func (s *Service) Ensure(ctx context.Context, scope Scope, day time.Time) ([]Question, error) {
	date := day.Format("2006-01-02")

	existing, err := s.store.QuizQuestions(ctx, scope, date)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	key := fmt.Sprintf("%s:%d:%d:%s", scope.Type, scope.ChapterID, scope.LessonID, date)
	v, err, _ := s.group.Do(key, func() (any, error) {
		existing, err := s.store.QuizQuestions(ctx, scope, date)
		if err != nil {
			return nil, fmt.Errorf("load quiz: %w", err)
		}
		if len(existing) > 0 {
			return existing, nil
		}

		questions, err := s.generator.Generate(ctx, scope)
		if err != nil {
			return nil, err
		}
		if err := s.store.AddQuizQuestions(ctx, scope, date, questions); err != nil {
			return nil, fmt.Errorf("save quiz: %w", err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Question), nil
}
