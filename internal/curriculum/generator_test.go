package curriculum

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/studyloop/internal/llm"
)

func TestGenerateChapters_ReturnsTitles(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":["Basics","Syntax","Concurrency","Testing","Tooling"]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	chapters, err := g.GenerateChapters(context.Background(), "Go Programming")
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(chapters) != 5 {
		t.Fatalf("expected 5 chapters, got %d", len(chapters))
	}
	if chapters[0] != "Basics" || chapters[4] != "Tooling" {
		t.Fatalf("chapter order not preserved: %v", chapters)
	}
}

func TestGenerateChapters_TruncatesToMax(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":["A","B","C","D","E","F","G"]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	chapters, err := g.GenerateChapters(context.Background(), "History")
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(chapters) != 5 {
		t.Fatalf("expected truncation to 5 chapters, got %d", len(chapters))
	}
}

func TestGenerateChapters_DropsDuplicates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":["Basics","basics","Syntax","  ","Syntax"]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	chapters, err := g.GenerateChapters(context.Background(), "Go Programming")
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 unique chapters, got %v", chapters)
	}
}

func TestGenerateChapters_ModelErrorSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.GenerationError{Reason: llm.ReasonModelError},
	})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.GenerateChapters(context.Background(), "Go Programming")
	if llm.ReasonOf(err) != llm.ReasonModelError {
		t.Fatalf("expected model-error, got: %v", err)
	}
}

func TestGenerateStructure_SelectionOrderWins(t *testing.T) {
	// The model returns chapters in a different order than selected.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":[
			{"title":"Syntax","lessons":["Variables","Functions","Control Flow"]},
			{"title":"Basics","lessons":["What is Go","Installing Go","Hello World"]}
		]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	structure, err := g.GenerateStructure(context.Background(), "Go Programming", []string{"Basics", "Syntax"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(structure.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(structure.Chapters))
	}
	if structure.Chapters[0].Title != "Basics" {
		t.Fatalf("expected selection order, got %q first", structure.Chapters[0].Title)
	}
	if structure.LessonCount() != 6 {
		t.Fatalf("expected 6 lessons, got %d", structure.LessonCount())
	}
}

func TestGenerateStructure_MissingChapterIsSchemaInvalid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":[
			{"title":"Basics","lessons":["What is Go"]}
		]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.GenerateStructure(context.Background(), "Go Programming", []string{"Basics", "Syntax"})
	if llm.ReasonOf(err) != llm.ReasonInvalidSchema {
		t.Fatalf("expected invalid-schema for missing chapter, got: %v", err)
	}
}

func TestGenerateStructure_DuplicateLessonsDeduped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"chapters":[
			{"title":"Basics","lessons":["Hello World","hello world","Setup"]}
		]}`),
	})
	g := NewGenerator(mock, DefaultConfig())

	structure, err := g.GenerateStructure(context.Background(), "Go Programming", []string{"Basics"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if got := len(structure.Chapters[0].Lessons); got != 2 {
		t.Fatalf("expected duplicate lesson dropped, got %d lessons", got)
	}
}
