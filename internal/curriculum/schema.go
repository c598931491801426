package curriculum

import "github.com/abhisek/studyloop/internal/llm"

// ChapterListSchema defines the JSON schema for chapter title generation.
var ChapterListSchema = &llm.Schema{
	Name:        "chapter-list",
	Description: "Chapter titles for a course, in teaching order",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chapters": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Up to 5 chapter titles, ordered from fundamentals to advanced topics",
			},
		},
		"required":             []any{"chapters"},
		"additionalProperties": false,
	},
}

// StructureSchema defines the JSON schema for lesson generation.
// Chapters are an ordered array of objects rather than a JSON map so
// the teaching order survives the round trip.
var StructureSchema = &llm.Schema{
	Name:        "course-structure",
	Description: "Lessons for each selected chapter of a course, in teaching order",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chapters": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "The chapter title, exactly as given",
						},
						"lessons": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    1,
							"description": "3 lesson titles for this chapter",
						},
					},
					"required":             []any{"title", "lessons"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"chapters"},
		"additionalProperties": false,
	},
}
