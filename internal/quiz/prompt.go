package quiz

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are an assessment writer creating fair multiple-choice questions that test understanding, not trivia.`

func buildQuizUserMessage(scope Scope) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", scope.CourseName)
	fmt.Fprintf(&b, "Topic: %s\n", scopeContext(scope))

	fmt.Fprintf(&b, `
Instructions:
Generate %d multiple-choice questions covering this topic.
- Each question has exactly 4 options with exactly one correct answer.
- The answer field must repeat the correct option verbatim.
- Options must be distinct and plausible; avoid "all of the above".
- Cover different aspects of the topic; no two questions should overlap.`,
		scope.Type.QuestionCount())

	return b.String()
}

// scopeContext renders what the quiz covers: the chapter alone for a
// large quiz, the chapter plus the lesson for a short one.
func scopeContext(scope Scope) string {
	if scope.Type == TypeShort {
		return fmt.Sprintf("%s, lesson: %s", scope.ChapterTitle, scope.LessonTitle)
	}
	return scope.ChapterTitle
}
