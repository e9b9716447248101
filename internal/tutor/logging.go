package tutor

import (
	"context"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
)

// LoggingProvider logs the latency and token usage of every request.
type LoggingProvider struct {
	inner Provider
	log   *logger.Logger
}

func WithLogging(p Provider, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, log: log.WithPrefix("tutor")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	log := l.log.WithFields(map[string]any{
		"model":      l.inner.ModelID(),
		"latency_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		log.Warn("generate failed: %v", err)
		return nil, err
	}
	log.WithFields(map[string]any{
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}).Debug("generate ok stop=%s", resp.StopReason)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) Ping(ctx context.Context) error {
	if p, ok := l.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
