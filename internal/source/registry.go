// Package source aggregates content from external knowledge providers:
// a static registry of provider characteristics, per-provider rate limits,
// a TTL response cache, and concurrent multi-source fetching.
package source

import (
	"sort"
	"strings"
	"time"

	"github.com/veracity-tools/veracity/internal/model"
)

// Registry holds the static provider table and the domain routing map.
// Immutable after construction.
type Registry struct {
	infos   map[string]model.ProviderInfo
	order   []string
	domains map[string][]string
}

func NewRegistry(infos []model.ProviderInfo, domains map[string][]string) *Registry {
	r := &Registry{
		infos:   make(map[string]model.ProviderInfo, len(infos)),
		domains: domains,
	}
	for _, info := range infos {
		if _, seen := r.infos[info.Name]; !seen {
			r.order = append(r.order, info.Name)
		}
		r.infos[info.Name] = info
	}
	return r
}

// DefaultRegistry returns the built-in provider table and domain routing.
func DefaultRegistry() *Registry {
	return NewRegistry(
		[]model.ProviderInfo{
			{Name: "Wikipedia", BaseURL: "https://en.wikipedia.org/api/rest_v1", ReliabilityScore: 0.9, RateLimit: 100, Timeout: 5 * time.Second},
			{Name: "Britannica", BaseURL: "https://www.britannica.com", ReliabilityScore: 0.95, RateLimit: 50, Timeout: 8 * time.Second},
			{Name: "Government of India", BaseURL: "https://www.india.gov.in", ReliabilityScore: 0.98, RateLimit: 30, Timeout: 10 * time.Second},
			{Name: "PM India", BaseURL: "https://pmindia.gov.in", ReliabilityScore: 0.99, RateLimit: 20, Timeout: 10 * time.Second},
			{Name: "Scientific American", BaseURL: "https://www.scientificamerican.com", ReliabilityScore: 0.85, RateLimit: 40, Timeout: 6 * time.Second},
			{Name: "Nature", BaseURL: "https://www.nature.com", ReliabilityScore: 0.92, RateLimit: 25, Timeout: 8 * time.Second},
			{Name: "TechCrunch", BaseURL: "https://techcrunch.com", ReliabilityScore: 0.8, RateLimit: 60, Timeout: 5 * time.Second},
			{Name: "BBC News", BaseURL: "https://www.bbc.com", ReliabilityScore: 0.88, RateLimit: 50, Timeout: 6 * time.Second},
			{Name: "Reuters", BaseURL: "https://www.reuters.com", ReliabilityScore: 0.87, RateLimit: 45, Timeout: 7 * time.Second},
			{Name: "World Bank", BaseURL: "https://api.worldbank.org", ReliabilityScore: 0.94, RateLimit: 30, Timeout: 10 * time.Second},
		},
		map[string][]string{
			"politics":   {"Wikipedia", "Government of India", "PM India", "BBC News", "Reuters"},
			"science":    {"Wikipedia", "Britannica", "Scientific American", "Nature"},
			"technology": {"Wikipedia", "TechCrunch", "BBC News", "Reuters"},
			"geography":  {"Wikipedia", "Britannica", "World Bank", "Government of India"},
			"history":    {"Wikipedia", "Britannica", "BBC News", "Reuters"},
			"general":    {"Wikipedia", "Britannica", "BBC News", "Reuters", "Scientific American"},
		},
	)
}

// Info returns the characteristics of a registered provider.
func (r *Registry) Info(name string) (model.ProviderInfo, bool) {
	info, ok := r.infos[name]
	return info, ok
}

// Infos lists all registered providers in registration order.
func (r *Registry) Infos() []model.ProviderInfo {
	out := make([]model.ProviderInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.infos[name])
	}
	return out
}

// Domains returns the domain routing table.
func (r *Registry) Domains() map[string][]string {
	return r.domains
}

// SelectSources resolves the provider list for a domain (falling back to
// "general"), sorted descending by reliability and truncated to maxSources.
func (r *Registry) SelectSources(domain string, maxSources int) []model.ProviderInfo {
	names, ok := r.domains[domain]
	if !ok {
		names = r.domains["general"]
	}

	selected := make([]model.ProviderInfo, 0, len(names))
	for _, name := range names {
		if info, ok := r.infos[name]; ok {
			selected = append(selected, info)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].ReliabilityScore > selected[j].ReliabilityScore
	})

	if maxSources > 0 && len(selected) > maxSources {
		selected = selected[:maxSources]
	}
	return selected
}

// MatchAuthority maps an authority source identifier (usually a hostname
// like "wikipedia.org") to a registered provider name, or "".
func (r *Registry) MatchAuthority(source string) string {
	src := strings.ToLower(source)
	for _, name := range r.order {
		token := strings.Fields(strings.ToLower(name))[0]
		if strings.Contains(src, token) {
			return name
		}
	}
	return ""
}
