package model

import "time"

// Config is the complete engine configuration.
// Constructed once at startup and passed by reference into every component;
// never mutated at runtime.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Session SessionConfig `yaml:"session"`
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Output  OutputConfig  `yaml:"output"`
}

// SourceConfig controls the source aggregator
type SourceConfig struct {
	MaxSources       int           `yaml:"max_sources"`        // Providers consulted per fact
	MaxConcurrent    int           `yaml:"max_concurrent"`     // Parallel fetches in flight
	CacheTTL         time.Duration `yaml:"cache_ttl"`          // Response cache lifetime
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`      // Fallback time box when a provider has none
	MinContentLength int           `yaml:"min_content_length"` // Records shorter than this are discarded
}

// SessionConfig controls session lifecycle
type SessionConfig struct {
	Retention time.Duration `yaml:"retention"` // How long completed sessions stay in the store
}

// HTTPConfig controls the production HTTP provider
type HTTPConfig struct {
	UserAgent    string `yaml:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	InsecureTLS  bool   `yaml:"insecure_tls"`
	HTTPProxy    string `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string `yaml:"https_proxy,omitempty"`
	NoProxy      string `yaml:"no_proxy,omitempty"`
}

// LLMConfig controls the optional session summarizer.
// The summary never affects any confidence value.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // Empty disables summaries
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never from file
	BaseURL   string `yaml:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout"` // Seconds
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			MaxSources:       5,
			MaxConcurrent:    5,
			CacheTTL:         5 * time.Minute,
			FetchTimeout:     10 * time.Second,
			MinContentLength: 50,
		},
		Session: SessionConfig{
			Retention: time.Hour,
		},
		HTTP: HTTPConfig{
			UserAgent:    "Veracity/0.1 (+https://github.com/veracity-tools/veracity)",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Model:     "gpt-4o-mini",
			MaxTokens: 1000,
			Timeout:   30,
		},
	}
}
