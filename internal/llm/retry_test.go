package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &GenerationError{Reason: ReasonModelError}},
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected success after retry, got: %v", err)
	}
	if string(resp.Content) != `"ok"` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_InvalidSchemaRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &GenerationError{Reason: ReasonInvalidSchema}},
		MockResponse{Err: &GenerationError{Reason: ReasonInvalidSchema}},
		MockResponse{Content: json.RawMessage(`"never reached"`)},
	)
	p := WithRetry(mock, fastRetryConfig(5))

	_, err := p.Generate(context.Background(), Request{})
	if ReasonOf(err) != ReasonInvalidSchema {
		t.Fatalf("expected invalid-schema, got: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected exactly 2 calls (one schema retry), got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellationNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: context.Canceled},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &GenerationError{Reason: ReasonModelError}},
		MockResponse{Err: &GenerationError{Reason: ReasonModelError}},
		MockResponse{Err: &GenerationError{Reason: ReasonModelError}},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	if ReasonOf(err) != ReasonModelError {
		t.Fatalf("expected model-error, got: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitHonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond}},
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	p := WithRetry(mock, fastRetryConfig(3))

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if time.Since(start) < time.Millisecond {
		t.Fatal("expected retry to wait for RetryAfter")
	}
}

func TestReasonOf_PlainError(t *testing.T) {
	if got := ReasonOf(errors.New("boom")); got != ReasonModelError {
		t.Fatalf("expected model-error for plain errors, got %q", got)
	}
}
