package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veracity-tools/veracity/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func testSession() model.VerificationSession {
	return model.VerificationSession{
		SessionID:         "s1",
		Query:             "capital of india",
		Domain:            "geography",
		OverallConfidence: 0.87,
		Status:            model.StatusCompleted,
		Results: []model.VerificationResult{
			{
				Fact:       "capital: New Delhi",
				Verified:   true,
				Confidence: 0.87,
				Method:     model.MethodMultiSource,
			},
			{
				Fact:       "currency: Indian Rupee",
				Verified:   false,
				Confidence: 0.45,
				Method:     model.MethodConflictResolution,
				Conflicts:  []model.FactConflict{{Type: model.ConflictNumerical}},
				Resolution: model.ConflictResolution{Method: model.ResolveTemporalRecency},
			},
		},
	}
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	summarizer, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summarizer.IsEnabled() {
		t.Error("Expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	summary, err := summarizer.Summarize(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Disabled summarizer should not error, got %v", err)
	}
	if summary != "" {
		t.Errorf("Disabled summarizer returned %q, want empty", summary)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "something-else"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestSummarizer_MockProvider(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{
			name:     "openai",
			response: &SummarizeResponse{Summary: "Two facts checked, one verified.", Model: "gpt-4o-mini"},
		},
	}

	if !summarizer.IsEnabled() {
		t.Error("Expected summarizer to be enabled")
	}
	if summarizer.ProviderName() != "openai" {
		t.Errorf("ProviderName = %q", summarizer.ProviderName())
	}

	summary, err := summarizer.Summarize(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "Two facts checked, one verified." {
		t.Errorf("summary = %q", summary)
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{name: "openai", err: errors.New("rate limited")},
	}

	if _, err := summarizer.Summarize(context.Background(), testSession()); err == nil {
		t.Error("Expected provider error to surface")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testSession())

	for _, want := range []string{
		"capital of india",
		"geography",
		"Facts checked: 2",
		"Facts verified: 1",
		"Conflicts detected: 1",
		"capital: New Delhi",
		"resolved via temporal_recency",
		"NEVER asserts absolute truth",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error without API key")
	}
}
