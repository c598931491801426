package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studyloop/internal/llm"
)

// Config holds quiz generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for quiz generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// Generator produces quizzes.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a quiz generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate produces the questions for a quiz scope. The question count
// and the option invariants are enforced here; a model response that
// violates them counts as schema-invalid.
func (g *Generator) Generate(ctx context.Context, scope Scope) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(scope)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	if err := validateQuestions(out.Questions, scope.Type.QuestionCount()); err != nil {
		return nil, fmt.Errorf("quiz generation: %w", llm.NewGenerationError(llm.ReasonInvalidSchema, err))
	}
	return out.Questions, nil
}

func validateQuestions(questions []Question, want int) error {
	if len(questions) != want {
		return fmt.Errorf("got %d questions, want %d", len(questions), want)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
		seen := make(map[string]bool, 4)
		correct := false
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("question %d has an empty option", i+1)
			}
			if seen[opt] {
				return fmt.Errorf("question %d repeats option %q", i+1, opt)
			}
			seen[opt] = true
			if opt == q.Answer {
				correct = true
			}
		}
		if !correct {
			return fmt.Errorf("question %d answer %q is not among its options", i+1, q.Answer)
		}
	}
	return nil
}
