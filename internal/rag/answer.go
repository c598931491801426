package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studyloop/internal/embed"
	"github.com/abhisek/studyloop/internal/llm"
)

// AnswerReason classifies question-answering failures.
type AnswerReason string

const (
	// ReasonNoContent: the lesson has no content to answer from.
	ReasonNoContent AnswerReason = "no-content"

	// ReasonRetrievalFailure: chunking, embedding, or index lookup failed.
	ReasonRetrievalFailure AnswerReason = "retrieval-failure"

	// ReasonModelError: the answer generation call failed.
	ReasonModelError AnswerReason = "model-error"
)

// AnswerError is the typed failure for question answering. Only
// no-content escapes Answer; the other reasons are recovered into a
// fallback answer and are visible here for logging.
type AnswerError struct {
	Reason AnswerReason
	Err    error
}

func (e *AnswerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("answer failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("answer failed (%s)", e.Reason)
}

func (e *AnswerError) Unwrap() error { return e.Err }

// Question identifies what is being asked and about which lesson.
type Question struct {
	Text         string
	CourseName   string
	ChapterTitle string
	LessonTitle  string

	// Content is the lesson's generated text, the only corpus the
	// answer may be grounded in.
	Content string
}

// Answer is a grounded response with its citation.
type Answer struct {
	Text     string
	Citation string
}

const (
	// topK is how many chunks ground an answer.
	topK = 3

	fallbackText     = "I'm having trouble accessing the lesson content right now. Please try rephrasing your question."
	fallbackCitation = "[System issue]"
)

// Answerer runs the retrieval-augmented answering pipeline. Each call
// builds its own index from the content passed in, so concurrent
// questions never share state.
type Answerer struct {
	provider llm.Provider
	embedder embed.Embedder
	chunker  *Chunker
	cfg      Config
}

// Config holds answer generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for answer generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.6,
	}
}

// NewAnswerer creates an Answerer.
func NewAnswerer(provider llm.Provider, embedder embed.Embedder, cfg Config) *Answerer {
	return &Answerer{
		provider: provider,
		embedder: embedder,
		chunker:  NewChunker(),
		cfg:      cfg,
	}
}

// Answer responds to a student question grounded in the lesson content.
// Empty content fails fast with no-content before any model call. Every
// failure past that point is recovered locally into a fallback answer:
// the student always gets a response, never an error page.
func (a *Answerer) Answer(ctx context.Context, q Question) (Answer, error) {
	if strings.TrimSpace(q.Content) == "" {
		return Answer{}, &AnswerError{Reason: ReasonNoContent}
	}

	answer, err := a.generate(ctx, q)
	if err != nil {
		return Answer{
			Text:     fallbackText,
			Citation: fallbackCitation,
		}, nil
	}
	return answer, nil
}

func (a *Answerer) generate(ctx context.Context, q Question) (Answer, error) {
	chunks := a.chunker.Split(q.Content)
	if len(chunks) == 0 {
		return Answer{}, &AnswerError{Reason: ReasonRetrievalFailure, Err: fmt.Errorf("no chunks from content")}
	}

	index, err := BuildIndex(ctx, a.embedder, chunks)
	if err != nil {
		return Answer{}, &AnswerError{Reason: ReasonRetrievalFailure, Err: err}
	}

	results, err := index.Query(ctx, q.Text, topK)
	if err != nil {
		return Answer{}, &AnswerError{Reason: ReasonRetrievalFailure, Err: err}
	}

	contextParts := make([]string, len(results))
	for i, r := range results {
		contextParts[i] = r.Chunk.Text
	}

	ctx = llm.WithPurpose(ctx, "rag-answer")
	req := llm.Request{
		System: answerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnswerUserMessage(q, strings.Join(contextParts, "\n\n"))},
		},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return Answer{}, &AnswerError{Reason: ReasonModelError, Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Answer{}, &AnswerError{Reason: ReasonModelError, Err: fmt.Errorf("empty answer")}
	}

	return Answer{
		Text:     text,
		Citation: "Reference: " + q.LessonTitle,
	}, nil
}
