// Package schedule turns a course structure into a day-by-day task
// calendar. The planner is pure: same structure and start date in, same
// calendar out.
package schedule

import "time"

// TaskType identifies what a schedule entry asks the student to do.
type TaskType string

const (
	TaskLesson    TaskType = "Lesson"
	TaskShortQuiz TaskType = "Short Quiz"
	TaskLargeQuiz TaskType = "Large Quiz"
)

// DateLayout is the canonical calendar-day format used across the app
// and the database.
const DateLayout = "2006-01-02"

// Entry is one scheduled task on one calendar day.
type Entry struct {
	Date        time.Time
	TaskType    TaskType
	Description string

	// ChapterTitle is always set. LessonTitle is empty for large quizzes.
	ChapterTitle string
	LessonTitle  string
}

// DateString returns the entry's calendar day in DateLayout.
func (e Entry) DateString() string {
	return e.Date.Format(DateLayout)
}
