package store

import (
	"context"
	"fmt"

	"github.com/abhisek/studyloop/internal/llm"
)

// AppendLLMRequest records one LLM API call in the request log.
func (s *Store) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMs, ev.Success, ev.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

// LLMRequestCount returns how many LLM calls have been logged.
func (s *Store) LLMRequestCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM llm_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count llm requests: %w", err)
	}
	return n, nil
}
