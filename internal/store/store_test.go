package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyloop/internal/curriculum"
	"github.com/abhisek/studyloop/internal/llm"
	"github.com/abhisek/studyloop/internal/quiz"
	"github.com/abhisek/studyloop/internal/schedule"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testStructure() curriculum.Structure {
	return curriculum.Structure{Chapters: []curriculum.Chapter{
		{Title: "Basics", Lessons: []string{"Syntax", "Types"}},
		{Title: "Concurrency", Lessons: []string{"Goroutines"}},
	}}
}

// createTestCourse stores a course with its planned schedule and
// returns its id.
func createTestCourse(t *testing.T, s *Store) int64 {
	t.Helper()
	structure := testStructure()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := schedule.Plan(structure, start)

	id, err := s.CreateCourse(context.Background(), "Go Fundamentals", structure, entries)
	require.NoError(t, err)
	return id
}

func TestCreateAndGetCourse(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)

	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Go Fundamentals", course.Name)
	require.Len(t, course.Chapters, 2)
	assert.Equal(t, "Basics", course.Chapters[0].Title)
	assert.Equal(t, "Concurrency", course.Chapters[1].Title)
	require.Len(t, course.Chapters[0].Lessons, 2)
	assert.Equal(t, "Syntax", course.Chapters[0].Lessons[0].Title)
	assert.Equal(t, "Types", course.Chapters[0].Lessons[1].Title)
	assert.False(t, course.Chapters[0].Lessons[0].HasContent)
}

func TestGetCourse_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetCourse(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCourses_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	first := createTestCourse(t, s)
	second := createTestCourse(t, s)

	courses, err := s.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, second, courses[0].ID)
	assert.Equal(t, first, courses[1].ID)
}

func TestCourseSchedule_MatchesPlan(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)

	tasks, err := s.CourseSchedule(context.Background(), id)
	require.NoError(t, err)

	// 3 lessons, 3 short quizzes, 2 large quizzes.
	require.Len(t, tasks, 8)
	assert.Equal(t, "2024-01-01", tasks[0].Date)
	assert.Equal(t, string(schedule.TaskLesson), tasks[0].TaskType)
	assert.Equal(t, string(schedule.TaskShortQuiz), tasks[1].TaskType)
	assert.Equal(t, tasks[0].Date, tasks[1].Date)
}

func TestLessonContent_SetOnce(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)

	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)
	lessonID := course.Chapters[0].Lessons[0].ID

	content, err := s.LessonContent(context.Background(), lessonID)
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, s.SetLessonContent(context.Background(), lessonID, "## Syntax\n\nbody"))
	require.NoError(t, s.SetLessonContent(context.Background(), lessonID, "overwrite attempt"))

	content, err = s.LessonContent(context.Background(), lessonID)
	require.NoError(t, err)
	assert.Equal(t, "## Syntax\n\nbody", content)
}

func TestSetLessonContent_UnknownLesson(t *testing.T) {
	s := openTestStore(t)

	err := s.SetLessonContent(context.Background(), 999, "body")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLesson_Detail(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)

	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)
	lessonID := course.Chapters[1].Lessons[0].ID

	detail, err := s.GetLesson(context.Background(), lessonID)
	require.NoError(t, err)
	assert.Equal(t, "Goroutines", detail.LessonTitle)
	assert.Equal(t, "Concurrency", detail.ChapterTitle)
	assert.Equal(t, "Go Fundamentals", detail.CourseName)
	assert.Equal(t, id, detail.CourseID)
}

func TestTasksForDate_MaterializesAndCompletes(t *testing.T) {
	s := openTestStore(t)
	createTestCourse(t, s)

	tasks, err := s.TasksForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.False(t, tasks[0].Completed)

	require.NoError(t, s.MarkTaskCompleted(context.Background(), tasks[0].ID))
	// Marking twice is a no-op.
	require.NoError(t, s.MarkTaskCompleted(context.Background(), tasks[0].ID))

	tasks, err = s.TasksForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)
}

func TestTasksForDate_EmptyDay(t *testing.T) {
	s := openTestStore(t)
	createTestCourse(t, s)

	tasks, err := s.TasksForDate(context.Background(), "2030-06-01")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestMarkTaskCompleted_UnknownTask(t *testing.T) {
	s := openTestStore(t)

	err := s.MarkTaskCompleted(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func quizScope(chapterID, lessonID int64) quiz.Scope {
	return quiz.Scope{
		Type:      quiz.TypeShort,
		ChapterID: chapterID,
		LessonID:  lessonID,
	}
}

func TestQuizQuestions_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)
	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)
	scope := quizScope(course.Chapters[0].ID, course.Chapters[0].Lessons[0].ID)

	stored, err := s.QuizQuestions(context.Background(), scope, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, stored)

	questions := []quiz.Question{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: "b"},
		{Text: "Q2", Options: []string{"w", "x", "y", "z"}, Answer: "z"},
	}
	require.NoError(t, s.AddQuizQuestions(context.Background(), scope, "2024-01-01", questions))

	stored, err = s.QuizQuestions(context.Background(), scope, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, questions, stored)

	// A second add for the same scope and date writes nothing.
	require.NoError(t, s.AddQuizQuestions(context.Background(), scope, "2024-01-01", questions))
	stored, err = s.QuizQuestions(context.Background(), scope, "2024-01-01")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestQuizQuestions_ScopedByDate(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)
	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)
	scope := quizScope(course.Chapters[0].ID, course.Chapters[0].Lessons[0].ID)

	questions := []quiz.Question{{Text: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"}}
	require.NoError(t, s.AddQuizQuestions(context.Background(), scope, "2024-01-01", questions))

	stored, err := s.QuizQuestions(context.Background(), scope, "2024-01-02")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDeleteCourse_Cascades(t *testing.T) {
	s := openTestStore(t)
	id := createTestCourse(t, s)
	course, err := s.GetCourse(context.Background(), id)
	require.NoError(t, err)

	scope := quizScope(course.Chapters[0].ID, course.Chapters[0].Lessons[0].ID)
	require.NoError(t, s.AddQuizQuestions(context.Background(), scope, "2024-01-01",
		[]quiz.Question{{Text: "Q", Options: []string{"a", "b", "c", "d"}, Answer: "a"}}))
	_, err = s.TasksForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(context.Background(), id))

	_, err = s.GetCourse(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := s.QuizQuestions(context.Background(), scope, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, stored)

	tasks, err := s.TasksForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = s.GetLesson(context.Background(), course.Chapters[0].Lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.DeleteCourse(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AppendLLMRequest(context.Background(), llm.RequestEvent{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "chapters",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMs:    950,
		Success:      true,
	}))
	require.NoError(t, s.AppendLLMRequest(context.Background(), llm.RequestEvent{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "lessons",
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	n, err := s.LLMRequestCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
