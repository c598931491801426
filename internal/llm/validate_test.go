package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":   map[string]any{"type": "string"},
				"count":   map[string]any{"type": "integer", "minimum": 0},
				"level":   map[string]any{"type": "string", "enum": []any{"beginner", "intermediate", "advanced"}},
				"lessons": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"title", "count"},
		},
	}
}

func assertReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got: %T", err)
	}
	if genErr.Reason != want {
		t.Fatalf("expected reason %q, got %q", want, genErr.Reason)
	}
}

func TestCheckResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"title":"Intro to Go","count":3,"level":"beginner"}`)
	if err := checkResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestCheckResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"title":"Concurrency","count":5}`)
	if err := checkResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestCheckResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"title":"Concurrency"}`)
	assertReason(t, checkResponse(testSchema(), raw), ReasonInvalidSchema)
}

func TestCheckResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"title":"Concurrency","count":"three"}`)
	assertReason(t, checkResponse(testSchema(), raw), ReasonInvalidSchema)
}

func TestCheckResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"title":"Concurrency","count":3,"level":"expert"}`)
	assertReason(t, checkResponse(testSchema(), raw), ReasonInvalidSchema)
}

func TestCheckResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	assertReason(t, checkResponse(testSchema(), raw), ReasonInvalidSchema)
}

func TestCheckResponse_Empty(t *testing.T) {
	assertReason(t, checkResponse(testSchema(), json.RawMessage(``)), ReasonEmptyOutput)
	assertReason(t, checkResponse(nil, json.RawMessage("  \n")), ReasonEmptyOutput)
}

func TestCheckResponse_NilSchemaFreeText(t *testing.T) {
	raw := json.RawMessage(`Goroutines are lightweight threads managed by the runtime.`)
	if err := checkResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCheckResponse_ArrayConstraints(t *testing.T) {
	schema := &Schema{
		Name:        "test-options",
		Description: "Bounded options list",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
			},
			"required": []any{"options"},
		},
	}

	valid := json.RawMessage(`{"options":["a","b","c","d"]}`)
	if err := checkResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	short := json.RawMessage(`{"options":["a","b","c"]}`)
	assertReason(t, checkResponse(schema, short), ReasonInvalidSchema)
}
