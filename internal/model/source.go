package model

import "time"

// SourceContent is the raw payload a source provider returns for a query.
type SourceContent struct {
	Text        string     `json:"text"`                   // Main body text
	Title       string     `json:"title,omitempty"`        // Document title, if any
	URL         string     `json:"url,omitempty"`          // Canonical URL of the content
	LastUpdated *time.Time `json:"last_updated,omitempty"` // When the source last changed
	Author      string     `json:"author,omitempty"`
	Language    string     `json:"language,omitempty"` // ISO code, defaults to "en"
}

// SourceRecord is a scored, cacheable snapshot of one provider's answer to one query.
type SourceRecord struct {
	Name           string    `json:"name"`            // Provider name
	URL            string    `json:"url,omitempty"`   // Where the content came from
	Content        string    `json:"content"`         // Body text
	Confidence     float64   `json:"confidence"`      // Per-source confidence in [0,1]
	LastUpdated    time.Time `json:"last_updated"`    // Content timestamp (fetch time if unknown)
	AuthorityScore float64   `json:"authority_score"` // Domain-derived trust weight in [0,1]
	Error          string    `json:"error,omitempty"` // Set when the fetch failed; confidence is 0
}

// ProviderInfo holds the static characteristics of a registered source provider.
type ProviderInfo struct {
	Name             string        `json:"name"`
	BaseURL          string        `json:"base_url,omitempty"`
	ReliabilityScore float64       `json:"reliability_score"` // Static trust prior in [0,1]
	RateLimit        float64       `json:"rate_limit"`        // Requests per second
	Timeout          time.Duration `json:"timeout"`           // Per-fetch time box
}
