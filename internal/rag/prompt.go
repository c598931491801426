package rag

import (
	"fmt"
	"strings"
)

const answerSystemPrompt = `You are a helpful tutor explaining concepts clearly and concisely. Answer only from the relevant content provided; if it does not cover the question, say so.`

func buildAnswerUserMessage(q Question, context string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "STUDENT QUESTION: %q\n", q.Text)

	b.WriteString("\nLESSON CONTEXT:\n")
	fmt.Fprintf(&b, "Course: %s\n", q.CourseName)
	fmt.Fprintf(&b, "Chapter: %s\n", q.ChapterTitle)
	fmt.Fprintf(&b, "Lesson: %s\n", q.LessonTitle)

	b.WriteString("\nRELEVANT CONTENT:\n")
	b.WriteString(context)

	b.WriteString(`

RESPONSE GUIDELINES:
- Length: match the complexity of the question.
  * Simple questions (what is X?): 1-2 paragraphs
  * Medium questions (how does X work?): 2-3 paragraphs
  * Complex questions (explain X in detail): 3-4 paragraphs
- Format: clear headings, bullet points, and emphasis.
- Style: conversational but professional.
- Focus: explain the concept with 1-2 good examples.

Use **bold** for key terms and *italics* for emphasis. Structure your answer with clear sections.`)

	return b.String()
}
