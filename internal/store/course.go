package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhisek/studyloop/internal/curriculum"
	"github.com/abhisek/studyloop/internal/schedule"
)

// Course is a stored course with its full chapter/lesson tree.
type Course struct {
	ID        int64
	Name      string
	CreatedAt string
	Chapters  []Chapter
}

// Chapter is a stored chapter with its ordered lessons.
type Chapter struct {
	ID      int64
	Title   string
	Lessons []Lesson
}

// Lesson is a stored lesson. HasContent reports whether its body has
// been generated yet.
type Lesson struct {
	ID         int64
	Title      string
	HasContent bool
}

// CourseSummary is a course row without its tree, for listings.
type CourseSummary struct {
	ID        int64
	Name      string
	CreatedAt string
}

// CreateCourse stores a course, its chapter/lesson tree, and its
// schedule in one transaction. Either the whole tree lands or nothing
// does.
func (s *Store) CreateCourse(ctx context.Context, name string, structure curriculum.Structure, entries []schedule.Entry) (int64, error) {
	var courseID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO courses (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		courseID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("course id: %w", err)
		}

		chapterIDs := make(map[string]int64, len(structure.Chapters))
		lessonIDs := make(map[[2]string]int64, structure.LessonCount())

		for ci, ch := range structure.Chapters {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO chapters (course_id, position, title) VALUES (?, ?, ?)`,
				courseID, ci+1, ch.Title)
			if err != nil {
				return fmt.Errorf("insert chapter %q: %w", ch.Title, err)
			}
			chapterID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("chapter id: %w", err)
			}
			chapterIDs[ch.Title] = chapterID

			for li, lesson := range ch.Lessons {
				res, err := tx.ExecContext(ctx,
					`INSERT INTO lessons (chapter_id, position, title) VALUES (?, ?, ?)`,
					chapterID, li+1, lesson)
				if err != nil {
					return fmt.Errorf("insert lesson %q: %w", lesson, err)
				}
				lessonID, err := res.LastInsertId()
				if err != nil {
					return fmt.Errorf("lesson id: %w", err)
				}
				lessonIDs[[2]string{ch.Title, lesson}] = lessonID
			}
		}

		for _, e := range entries {
			chapterID, ok := chapterIDs[e.ChapterTitle]
			if !ok {
				return fmt.Errorf("schedule entry references unknown chapter %q", e.ChapterTitle)
			}
			var lessonID any
			if e.LessonTitle != "" {
				id, ok := lessonIDs[[2]string{e.ChapterTitle, e.LessonTitle}]
				if !ok {
					return fmt.Errorf("schedule entry references unknown lesson %q", e.LessonTitle)
				}
				lessonID = id
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schedule (course_id, date, task_type, description, chapter_id, lesson_id)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				courseID, e.DateString(), string(e.TaskType), e.Description, chapterID, lessonID); err != nil {
				return fmt.Errorf("insert schedule entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return courseID, nil
}

// GetCourse loads a course with its full chapter/lesson tree.
func (s *Store) GetCourse(ctx context.Context, courseID int64) (*Course, error) {
	var c Course
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM courses WHERE id = ?`, courseID).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title FROM chapters WHERE course_id = ? ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ch Chapter
		if err := rows.Scan(&ch.ID, &ch.Title); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		c.Chapters = append(c.Chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	for i := range c.Chapters {
		lessons, err := s.chapterLessons(ctx, c.Chapters[i].ID)
		if err != nil {
			return nil, err
		}
		c.Chapters[i].Lessons = lessons
	}
	return &c, nil
}

func (s *Store) chapterLessons(ctx context.Context, chapterID int64) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content != '' FROM lessons WHERE chapter_id = ? ORDER BY position`, chapterID)
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	defer rows.Close()

	var lessons []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.HasContent); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// ListCourses returns all courses, newest first.
func (s *Store) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM courses ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []CourseSummary
	for rows.Next() {
		var c CourseSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCourse removes a course and everything hanging off it. Deletes
// cascade explicitly, child tables first, in one transaction.
func (s *Store) DeleteCourse(ctx context.Context, courseID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM courses WHERE id = ?`, courseID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}

		steps := []string{
			`DELETE FROM quizzes WHERE chapter_id IN (SELECT id FROM chapters WHERE course_id = ?)`,
			`DELETE FROM todays_tasks WHERE schedule_id IN (SELECT id FROM schedule WHERE course_id = ?)`,
			`DELETE FROM schedule WHERE course_id = ?`,
			`DELETE FROM lessons WHERE chapter_id IN (SELECT id FROM chapters WHERE course_id = ?)`,
			`DELETE FROM chapters WHERE course_id = ?`,
			`DELETE FROM courses WHERE id = ?`,
		}
		for _, q := range steps {
			if _, err := tx.ExecContext(ctx, q, courseID); err != nil {
				return fmt.Errorf("cascade delete: %w", err)
			}
		}
		return nil
	})
}
