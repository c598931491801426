package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RequestEvent captures a single LLM API call for the persistent
// request log.
type RequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventSink receives request events. The SQLite store implements this.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, ev RequestEvent) error
}

// LoggingProvider is a decorator that logs every LLM request and appends
// it to the event sink.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
	sink   EventSink
}

// WithLogging wraps a Provider with request logging. The sink may be nil.
func WithLogging(p Provider, logger *zap.Logger, sink EventSink) Provider {
	return &LoggingProvider{inner: p, logger: logger, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	ev := RequestEvent{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = resp.Model
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("purpose", purpose),
		zap.String("model", ev.Model),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	// Record the event but never fail the request over logging.
	if l.sink != nil {
		if sinkErr := l.sink.AppendLLMRequest(ctx, ev); sinkErr != nil {
			l.logger.Warn("failed to append llm request event", zap.Error(sinkErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
