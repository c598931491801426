package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/studyloop/internal/llm"
)

func shortScope() Scope {
	return Scope{
		Type:         TypeShort,
		ChapterID:    3,
		LessonID:     11,
		CourseName:   "Go Fundamentals",
		ChapterTitle: "Concurrency",
		LessonTitle:  "Goroutines and Channels",
	}
}

func largeScope() Scope {
	return Scope{
		Type:         TypeLarge,
		ChapterID:    3,
		CourseName:   "Go Fundamentals",
		ChapterTitle: "Concurrency",
	}
}

// makeQuestions builds n valid distinct questions.
func makeQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		letter := string(rune('A' + i))
		qs[i] = Question{
			Text:    "What does concept " + letter + " mean?",
			Options: []string{letter + "1", letter + "2", letter + "3", letter + "4"},
			Answer:  letter + "2",
		}
	}
	return qs
}

func quizResponse(t *testing.T, qs []Question) llm.MockResponse {
	t.Helper()
	raw, err := json.Marshal(quizOutput{Questions: qs})
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	return llm.MockResponse{Content: raw}
}

func assertInvalidSchema(t *testing.T, err error) {
	t.Helper()
	var gerr *llm.GenerationError
	if !errors.As(err, &gerr) || gerr.Reason != llm.ReasonInvalidSchema {
		t.Fatalf("expected invalid-schema GenerationError, got %v", err)
	}
}

func TestGenerate_ShortQuizFiveQuestions(t *testing.T) {
	provider := llm.NewMockProvider(quizResponse(t, makeQuestions(5)))
	g := NewGenerator(provider, DefaultConfig())

	questions, err := g.Generate(context.Background(), shortScope())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}

	msg := provider.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Concurrency, lesson: Goroutines and Channels") {
		t.Fatalf("short quiz prompt missing lesson scope: %q", msg)
	}
}

func TestGenerate_LargeQuizTenQuestions(t *testing.T) {
	provider := llm.NewMockProvider(quizResponse(t, makeQuestions(10)))
	g := NewGenerator(provider, DefaultConfig())

	questions, err := g.Generate(context.Background(), largeScope())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}

	msg := provider.Calls[0].Messages[0].Content
	if strings.Contains(msg, "lesson:") {
		t.Fatalf("large quiz prompt should not carry a lesson: %q", msg)
	}
}

func TestGenerate_WrongQuestionCount(t *testing.T) {
	provider := llm.NewMockProvider(quizResponse(t, makeQuestions(4)))
	g := NewGenerator(provider, DefaultConfig())

	_, err := g.Generate(context.Background(), shortScope())
	assertInvalidSchema(t, err)
}

func TestGenerate_DuplicateOptions(t *testing.T) {
	qs := makeQuestions(5)
	qs[2].Options = []string{"same", "same", "other", "another"}
	qs[2].Answer = "other"
	provider := llm.NewMockProvider(quizResponse(t, qs))
	g := NewGenerator(provider, DefaultConfig())

	_, err := g.Generate(context.Background(), shortScope())
	assertInvalidSchema(t, err)
}

func TestGenerate_AnswerNotAmongOptions(t *testing.T) {
	qs := makeQuestions(5)
	qs[0].Answer = "not listed"
	provider := llm.NewMockProvider(quizResponse(t, qs))
	g := NewGenerator(provider, DefaultConfig())

	_, err := g.Generate(context.Background(), shortScope())
	assertInvalidSchema(t, err)
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.GenerationError{Reason: llm.ReasonModelError},
	})
	g := NewGenerator(provider, DefaultConfig())

	_, err := g.Generate(context.Background(), shortScope())
	if llm.ReasonOf(err) != llm.ReasonModelError {
		t.Fatalf("expected model-error, got %v", err)
	}
}
