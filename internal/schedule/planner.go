package schedule

import (
	"time"

	"github.com/abhisek/studyloop/internal/curriculum"
)

// Plan maps a course structure to its task calendar, starting at start's
// calendar day. For each lesson in declared order it emits a Lesson entry
// and a Short Quiz entry on the same day, then advances one day; after a
// chapter's last lesson it emits the chapter's Large Quiz on the next
// day and advances again. Dates are contiguous with no gaps or reuse:
// the calendar spans exactly sum(lessons) + len(chapters) days.
//
// An empty structure yields an empty (non-nil) plan, not an error.
func Plan(structure curriculum.Structure, start time.Time) []Entry {
	cursor := truncateToDay(start)
	entries := make([]Entry, 0, 2*structure.LessonCount()+len(structure.Chapters))

	for _, chapter := range structure.Chapters {
		for _, lesson := range chapter.Lessons {
			entries = append(entries,
				Entry{
					Date:         cursor,
					TaskType:     TaskLesson,
					Description:  lesson,
					ChapterTitle: chapter.Title,
					LessonTitle:  lesson,
				},
				Entry{
					Date:         cursor,
					TaskType:     TaskShortQuiz,
					Description:  "Short Quiz: " + lesson,
					ChapterTitle: chapter.Title,
					LessonTitle:  lesson,
				},
			)
			cursor = cursor.AddDate(0, 0, 1)
		}

		entries = append(entries, Entry{
			Date:         cursor,
			TaskType:     TaskLargeQuiz,
			Description:  "Large Quiz: " + chapter.Title,
			ChapterTitle: chapter.Title,
		})
		cursor = cursor.AddDate(0, 0, 1)
	}

	return entries
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
