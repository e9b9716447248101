package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
)

// Config selects and configures a provider.
type Config struct {
	// Provider is one of openai, ollama, anthropic, gemini or mock.
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	// Timeout bounds each attempt. Zero leaves it to the caller's context.
	Timeout time.Duration
	Retry   RetryConfig
}

// NewProvider builds the configured provider wrapped as retry, timeout,
// logging and then the base client.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "ollama":
		base, err = NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case "anthropic":
		base, err = NewAnthropicProvider(AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model})
	case "gemini":
		base, err = NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithTimeout(WithLogging(base, log), cfg.Timeout), cfg.Retry), nil
}

// TimeoutProvider gives every Generate call its own deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

func (t *TimeoutProvider) Ping(ctx context.Context) error {
	if p, ok := t.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
