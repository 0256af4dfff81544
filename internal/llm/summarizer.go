package llm

import (
	"context"
	"fmt"

	"github.com/ordlabs/ordscan/internal/aggregate"
)

// Summarizer wraps a provider and handles the disabled case. A Summarizer
// with a nil provider is valid and does nothing.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. With no provider
// configured it returns an enabled-but-inert summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary summarizes the run result. Returns (nil, nil) when the
// summarizer is disabled so callers need no special-casing.
func (s *Summarizer) GenerateSummary(ctx context.Context, result aggregate.RunResult) (*SummarizeResponse, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("LLM provider %s is not available", s.provider.Name())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}
	return resp, nil
}
