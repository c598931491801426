package content

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"
)

// Store is the persistence the service needs for lesson bodies.
// LessonContent returns "" for a lesson whose body has not been
// generated yet; generated bodies are never empty.
type Store interface {
	LessonContent(ctx context.Context, lessonID int64) (string, error)
	SetLessonContent(ctx context.Context, lessonID int64, content string) error
}

// LessonRef identifies a lesson and the prompt context it sits in.
type LessonRef struct {
	LessonID     int64
	CourseName   string
	ChapterTitle string
	LessonTitle  string
}

// Service generates each lesson's body at most once. Concurrent views
// of the same lesson are collapsed with singleflight so only one of
// them hits the model; a failed generation persists nothing, and the
// next view retries.
type Service struct {
	generator *Generator
	store     Store
	group     singleflight.Group
}

// NewService creates a content service.
func NewService(generator *Generator, store Store) *Service {
	return &Service{generator: generator, store: store}
}

// Ensure returns the lesson's body, generating and persisting it on
// first view.
func (s *Service) Ensure(ctx context.Context, ref LessonRef) (string, error) {
	existing, err := s.store.LessonContent(ctx, ref.LessonID)
	if err != nil {
		return "", fmt.Errorf("load lesson content: %w", err)
	}
	if existing != "" {
		return existing, nil
	}

	v, err, _ := s.group.Do(strconv.FormatInt(ref.LessonID, 10), func() (any, error) {
		// A concurrent caller may have won the race and persisted already.
		existing, err := s.store.LessonContent(ctx, ref.LessonID)
		if err != nil {
			return "", fmt.Errorf("load lesson content: %w", err)
		}
		if existing != "" {
			return existing, nil
		}

		text, err := s.generator.Generate(ctx, ref.CourseName, ref.ChapterTitle, ref.LessonTitle)
		if err != nil {
			return "", err
		}
		if err := s.store.SetLessonContent(ctx, ref.LessonID, text); err != nil {
			return "", fmt.Errorf("save lesson content: %w", err)
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
