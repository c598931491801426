package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Task is one schedule entry surfaced for a specific day, with its
// completion state.
type Task struct {
	ID          int64
	ScheduleID  int64
	Date        string
	TaskType    string
	Description string
	CourseID    int64
	CourseName  string
	ChapterID   int64
	LessonID    int64
	Completed   bool
}

// TasksForDate returns every scheduled task for a calendar day across
// all courses. Day rows are materialized on first access so completion
// state can be tracked per day; repeated calls are stable.
func (s *Store) TasksForDate(ctx context.Context, date string) ([]Task, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO todays_tasks (schedule_id, date)
		 SELECT id, date FROM schedule WHERE date = ?`, date); err != nil {
		return nil, fmt.Errorf("materialize tasks: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.schedule_id, t.date, s.task_type, s.description,
		        s.course_id, co.name, s.chapter_id, COALESCE(s.lesson_id, 0), t.completed
		 FROM todays_tasks t
		 JOIN schedule s ON s.id = t.schedule_id
		 JOIN courses co ON co.id = s.course_id
		 WHERE t.date = ?
		 ORDER BY s.id`, date)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.ScheduleID, &t.Date, &t.TaskType, &t.Description,
			&t.CourseID, &t.CourseName, &t.ChapterID, &t.LessonID, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CourseSchedule returns a course's full schedule in calendar order.
func (s *Store) CourseSchedule(ctx context.Context, courseID int64) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.date, s.task_type, s.description, s.course_id, co.name,
		        s.chapter_id, COALESCE(s.lesson_id, 0)
		 FROM schedule s
		 JOIN courses co ON co.id = s.course_id
		 WHERE s.course_id = ?
		 ORDER BY s.date, s.id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ScheduleID, &t.Date, &t.TaskType, &t.Description,
			&t.CourseID, &t.CourseName, &t.ChapterID, &t.LessonID); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// MarkTaskCompleted marks a day task done. Marking an already-completed
// task is a no-op.
func (s *Store) MarkTaskCompleted(ctx context.Context, taskID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todays_tasks SET completed = 1 WHERE id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("mark task completed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM todays_tasks WHERE id = ?`, taskID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check task: %w", err)
		}
	}
	return nil
}
