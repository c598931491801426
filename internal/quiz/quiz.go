package quiz

// Type distinguishes the two quiz kinds.
type Type string

const (
	// TypeShort is a per-lesson quiz, 5 questions.
	TypeShort Type = "short"

	// TypeLarge is a per-chapter quiz, 10 questions.
	TypeLarge Type = "large"
)

// QuestionCount returns how many questions a quiz of this type has.
func (t Type) QuestionCount() int {
	if t == TypeLarge {
		return 10
	}
	return 5
}

// Question is a single multiple-choice question. Options always holds
// exactly 4 distinct entries, one of which equals Answer.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Scope identifies what a quiz covers: the chapter for a large quiz,
// one of its lessons additionally for a short quiz. LessonID is 0 for
// large quizzes.
type Scope struct {
	Type         Type
	ChapterID    int64
	LessonID     int64
	CourseName   string
	ChapterTitle string
	LessonTitle  string
}
