package curriculum

import (
	"fmt"
	"strings"
)

const chaptersSystemPrompt = `You are a curriculum designer breaking a subject into a small number of well-ordered chapters.`

func buildChaptersUserMessage(course string, maxChapters int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", course)

	fmt.Fprintf(&b, `
Instructions:
Generate a list of %d chapter titles for this course that together give a
full understanding of the topic.
- Order chapters from fundamentals to advanced material.
- Each title should be short (3-8 words) and self-explanatory.
- Titles must be distinct from each other.`, maxChapters)

	return b.String()
}

const lessonsSystemPrompt = `You are a curriculum designer expanding course chapters into individual lessons.`

func buildLessonsUserMessage(course string, chapters []string, lessonsPerChapter int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", course)
	b.WriteString("\nChapters:\n")
	for i, ch := range chapters {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ch)
	}

	fmt.Fprintf(&b, `
Instructions:
For each chapter above, generate %d lesson titles.
- Keep the chapters in the given order and use their titles exactly as written.
- Lessons within a chapter should build on each other.
- Each lesson title should be short and concrete; no duplicates within a chapter.`, lessonsPerChapter)

	return b.String()
}
