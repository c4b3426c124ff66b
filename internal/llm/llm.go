// Package llm adapts the supported model providers to one text-completion
// interface.
package llm

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/clawfood/clawfood/internal/config"
	"github.com/clawfood/clawfood/pkg/anthropic"
	"github.com/clawfood/clawfood/pkg/gemini"
)

// ErrNotConfigured is returned when the selected provider has no API key.
var ErrNotConfigured = eris.New("llm: provider not configured")

// Client completes a prompt. Retryable upstream failures are returned as
// resilience.TransientError.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	// Name identifies the provider and model for logs.
	Name() string
}

// New builds the client for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.Gemini.Key == "" {
			return nil, ErrNotConfigured
		}
		opts := []gemini.Option{gemini.WithHTTPClient(httpClient(cfg))}
		if cfg.Gemini.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.Gemini.BaseURL))
		}
		gc, err := gemini.NewClient(ctx, cfg.Gemini.Key, opts...)
		if err != nil {
			return nil, err
		}
		return NewGemini(gc, cfg.Gemini.Model, cfg.Temperature), nil
	case "anthropic":
		if cfg.Anthropic.Key == "" {
			return nil, ErrNotConfigured
		}
		opts := []anthropic.Option{anthropic.WithHTTPClient(httpClient(cfg))}
		if cfg.Anthropic.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.Anthropic.BaseURL))
		}
		ac := anthropic.NewClient(cfg.Anthropic.Key, opts...)
		return NewAnthropic(ac, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cfg.Temperature), nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// httpClient bounds each model call by the configured timeout.
func httpClient(cfg config.LLMConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout()}
}
