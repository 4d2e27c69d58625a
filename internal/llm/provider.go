package llm

import (
	"context"
	"fmt"

	"github.com/veracity-tools/veracity/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of a verification session
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Session is the completed verification session to summarize.
	// The summary is derived data only: nothing in it ever feeds back
	// into confidence values.
	Session model.VerificationSession

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default prompt for summarizing a session.
// The prompt frames the task as describing verification outcomes, never
// asserting truth beyond what the results state.
func BuildPrompt(session model.VerificationSession) string {
	verified := 0
	conflicts := 0
	for _, result := range session.Results {
		if result.Verified {
			verified++
		}
		conflicts += len(result.Conflicts)
	}

	prompt := fmt.Sprintf(`You are summarizing a fact verification session. The system checks facts against multiple sources and reports confidence - it NEVER asserts absolute truth.

CRITICAL RULES:
1. Only describe the verification results listed below. Do not add outside knowledge.
2. Report confidence and conflicts as the system measured them.
3. Never say "this is true" or "this is false" - only describe what the sources support.

Session Summary:
- Query: %s
- Domain: %s
- Facts checked: %d
- Facts verified: %d
- Conflicts detected: %d
- Overall confidence: %.2f

Fact Results:
`, session.Query, session.Domain, len(session.Results), verified, conflicts, session.OverallConfidence)

	for _, result := range session.Results {
		prompt += fmt.Sprintf("- %s: verified=%t, confidence=%.2f, method=%s", result.Fact, result.Verified, result.Confidence, result.Method)
		if len(result.Conflicts) > 0 {
			prompt += fmt.Sprintf(", conflicts=%d resolved via %s", len(result.Conflicts), result.Resolution.Method)
		}
		prompt += "\n"
	}

	prompt += "\nProvide a 3-4 sentence summary focusing on verification outcomes and source agreement."

	return prompt
}
