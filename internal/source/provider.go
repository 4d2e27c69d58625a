package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/veracity-tools/veracity/internal/model"
)

// Provider fetches content from one external source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string) (*model.SourceContent, error)
}

// templateProvider renders canned descriptive content for sources that
// expose no machine-readable API. It stands in until a real integration
// exists; its output still flows through the normal scoring path.
type templateProvider struct {
	name      string
	body      string // printf pattern, %s = query
	searchURL string // printf pattern, %s = escaped query
}

func (p *templateProvider) Name() string { return p.name }

func (p *templateProvider) Fetch(ctx context.Context, query string) (*model.SourceContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &model.SourceContent{
		Text:        fmt.Sprintf(p.body, query),
		Title:       query + " - " + p.name,
		URL:         fmt.Sprintf(p.searchURL, url.QueryEscape(query)),
		LastUpdated: &now,
		Language:    "en",
	}, nil
}

// DefaultProviders returns the standard provider set: a live Wikipedia
// client plus template providers for the remaining registered sources.
func DefaultProviders(httpCfg model.HTTPConfig) map[string]Provider {
	providers := map[string]Provider{
		"Wikipedia": NewWikipediaProvider(httpCfg, 5*time.Second),
	}
	for _, tp := range []*templateProvider{
		{
			name:      "Britannica",
			body:      "Britannica provides authoritative information about %s. This comprehensive resource offers detailed insights and expert analysis.",
			searchURL: "https://www.britannica.com/search?query=%s",
		},
		{
			name:      "Government of India",
			body:      "Official information from the Government of India regarding %s. This data is verified and authoritative.",
			searchURL: "https://www.india.gov.in/search?query=%s",
		},
		{
			name:      "PM India",
			body:      "Information from the Prime Minister's Office regarding %s. This is official government data.",
			searchURL: "https://pmindia.gov.in/search?query=%s",
		},
		{
			name:      "Scientific American",
			body:      "Scientific analysis and research findings about %s from Scientific American. Peer-reviewed content with scientific accuracy.",
			searchURL: "https://www.scientificamerican.com/search?query=%s",
		},
		{
			name:      "Nature",
			body:      "Research and scientific publications about %s from Nature. High-quality scientific content and peer-reviewed research.",
			searchURL: "https://www.nature.com/search?query=%s",
		},
		{
			name:      "TechCrunch",
			body:      "Technology news and analysis about %s from TechCrunch. Latest developments and industry insights.",
			searchURL: "https://techcrunch.com/search?query=%s",
		},
		{
			name:      "BBC News",
			body:      "News coverage and analysis about %s from BBC News. Reliable and comprehensive news reporting.",
			searchURL: "https://www.bbc.com/search?query=%s",
		},
		{
			name:      "Reuters",
			body:      "News and analysis about %s from Reuters. Professional journalism and factual reporting.",
			searchURL: "https://www.reuters.com/search?query=%s",
		},
		{
			name:      "World Bank",
			body:      "Economic data and analysis about %s from the World Bank. Official economic statistics and development indicators.",
			searchURL: "https://data.worldbank.org/search?query=%s",
		},
	} {
		providers[tp.name] = tp
	}
	return providers
}
