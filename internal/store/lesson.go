package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LessonDetail is a lesson with the chapter and course it belongs to,
// enough context for content generation and question answering.
type LessonDetail struct {
	LessonID     int64
	LessonTitle  string
	Content      string
	ChapterID    int64
	ChapterTitle string
	CourseID     int64
	CourseName   string
}

// GetLesson loads a lesson together with its chapter and course names.
func (s *Store) GetLesson(ctx context.Context, lessonID int64) (*LessonDetail, error) {
	var d LessonDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT l.id, l.title, l.content, c.id, c.title, co.id, co.name
		 FROM lessons l
		 JOIN chapters c ON c.id = l.chapter_id
		 JOIN courses co ON co.id = c.course_id
		 WHERE l.id = ?`, lessonID).
		Scan(&d.LessonID, &d.LessonTitle, &d.Content, &d.ChapterID, &d.ChapterTitle, &d.CourseID, &d.CourseName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	return &d, nil
}

// ChapterDetail is a chapter with the course it belongs to.
type ChapterDetail struct {
	ChapterID    int64
	ChapterTitle string
	CourseID     int64
	CourseName   string
}

// GetChapter loads a chapter together with its course name.
func (s *Store) GetChapter(ctx context.Context, chapterID int64) (*ChapterDetail, error) {
	var d ChapterDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.title, co.id, co.name
		 FROM chapters c
		 JOIN courses co ON co.id = c.course_id
		 WHERE c.id = ?`, chapterID).
		Scan(&d.ChapterID, &d.ChapterTitle, &d.CourseID, &d.CourseName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load chapter: %w", err)
	}
	return &d, nil
}

// LessonContent returns the lesson's body, "" when not yet generated.
func (s *Store) LessonContent(ctx context.Context, lessonID int64) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM lessons WHERE id = ?`, lessonID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load lesson content: %w", err)
	}
	return content, nil
}

// SetLessonContent stores a lesson body if none exists yet. A body that
// is already present stays untouched, so a racing second generation
// never overwrites the first.
func (s *Store) SetLessonContent(ctx context.Context, lessonID int64, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET content = ? WHERE id = ? AND content = ''`,
		content, lessonID)
	if err != nil {
		return fmt.Errorf("set lesson content: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the lesson does not exist or content is already set.
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM lessons WHERE id = ?`, lessonID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check lesson: %w", err)
		}
	}
	return nil
}
