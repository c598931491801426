package quiz

import "github.com/abhisek/studyloop/internal/llm"

// QuizSchema defines the JSON schema for quiz generation. The question
// count varies by quiz type, so it is checked after parsing rather
// than encoded here.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multiple-choice quiz questions with exactly four options each",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly four answer options, one correct",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
				"minItems": 1,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
