package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studyloop/internal/llm"
)

// ContentSchema defines the JSON schema for lesson content generation.
var ContentSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "The full markdown body of a single lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Complete lesson text in markdown, with section headings",
			},
		},
		"required":             []any{"content"},
		"additionalProperties": false,
	},
}

const contentSystemPrompt = `You are an expert teacher writing complete, self-contained lesson material in markdown.`

func buildContentUserMessage(course, chapter, lesson string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", course)
	fmt.Fprintf(&b, "Chapter: %s\n", chapter)
	fmt.Fprintf(&b, "Lesson: %s\n", lesson)

	b.WriteString(`
Instructions:
Write the full lesson as markdown.
- Open with a short introduction of what the lesson covers and why it matters.
- Break the material into sections, each starting with a "## " heading.
- Explain every concept with at least one concrete example.
- Close with a brief summary of the key points.
- Write for a motivated beginner; define terms the first time they appear.`)

	return b.String()
}

// Config holds content generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson content.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.5,
	}
}

// Generator produces lesson bodies.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a content generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type contentOutput struct {
	Content string `json:"content"`
}

// Generate writes the markdown body for one lesson.
func (g *Generator) Generate(ctx context.Context, course, chapter, lesson string) (string, error) {
	ctx = llm.WithPurpose(ctx, "content")

	req := llm.Request{
		System: contentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildContentUserMessage(course, chapter, lesson)},
		},
		Schema:      ContentSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("content generation: %w", err)
	}

	var out contentOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse content response: %w", err)
	}

	text := strings.TrimSpace(out.Content)
	if text == "" {
		return "", fmt.Errorf("content generation: %w", llm.NewGenerationError(llm.ReasonEmptyOutput, nil))
	}
	return text, nil
}
