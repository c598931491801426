package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Reason classifies why a generation failed.
type Reason string

const (
	// ReasonInvalidSchema means the model responded but the content does
	// not conform to the requested schema (or is not valid JSON at all).
	ReasonInvalidSchema Reason = "invalid-schema"

	// ReasonModelError means the provider call itself failed.
	ReasonModelError Reason = "model-error"

	// ReasonEmptyOutput means the model returned no usable content.
	ReasonEmptyOutput Reason = "empty-output"
)

// GenerationError is the typed failure returned by providers and the
// generators built on them.
type GenerationError struct {
	Reason  Reason
	Content json.RawMessage
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError builds a GenerationError with the given reason.
func NewGenerationError(reason Reason, err error) *GenerationError {
	return &GenerationError{Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason from an error chain.
// Returns ReasonModelError for errors that are not GenerationErrors,
// since from the caller's perspective the model call failed.
func ReasonOf(err error) Reason {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Reason
	}
	return ReasonModelError
}

// ErrRateLimit indicates the provider returned a rate limit error (429).
// It is kept distinct from GenerationError so the retry decorator can
// honor the provider's requested wait.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }
