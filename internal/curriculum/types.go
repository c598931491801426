// Package curriculum generates the chapter and lesson structure of a
// course and tracks the two-step creation flow (propose chapters, then
// build lessons for the user's selection).
package curriculum

// Structure is the chapter/lesson tree of a course, in teaching order.
type Structure struct {
	Chapters []Chapter
}

// Chapter is one chapter with its ordered lesson titles.
type Chapter struct {
	Title   string
	Lessons []string
}

// LessonCount returns the total number of lessons across all chapters.
func (s Structure) LessonCount() int {
	n := 0
	for _, ch := range s.Chapters {
		n += len(ch.Lessons)
	}
	return n
}

// IsEmpty reports whether the structure has no chapters.
func (s Structure) IsEmpty() bool {
	return len(s.Chapters) == 0
}
