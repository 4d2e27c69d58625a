package llm

import (
	"context"
	"fmt"

	"github.com/veracity-tools/veracity/internal/model"
)

// Summarizer wraps an optional provider behind a safe no-op. A disabled
// summarizer (no provider configured) returns empty summaries without
// error, so callers never branch on configuration.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer from configuration. An empty provider
// name yields an enabled-but-inert summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the active provider's name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Summarize renders a narrative over a completed session. Disabled
// summarizers return an empty summary and no error. The returned text is
// presentation only and never feeds back into any confidence value.
func (s *Summarizer) Summarize(ctx context.Context, session model.VerificationSession) (string, error) {
	if s.provider == nil {
		return "", nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Session:   session,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize session %s: %w", session.SessionID, err)
	}
	return resp.Summary, nil
}
