package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/veracity-tools/veracity/internal/model"
)

// Aggregator coordinates fetches across providers: domain-based selection,
// per-provider rate limiting, response caching, and confidence scoring.
// Safe for concurrent use.
type Aggregator struct {
	cfg       model.SourceConfig
	registry  *Registry
	providers map[string]Provider
	logger    *log.Logger

	// Janitor disabled: expired entries are evicted lazily on access.
	cache *gocache.Cache

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	hits   atomic.Uint64
	misses atomic.Uint64
}

func New(cfg model.SourceConfig, registry *Registry, providers map[string]Provider, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		cfg:       cfg,
		registry:  registry,
		providers: providers,
		logger:    logger,
		cache:     gocache.New(cfg.CacheTTL, 0),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// SelectSources resolves the ranked provider list for a domain.
func (a *Aggregator) SelectSources(domain string, maxSources int) []model.ProviderInfo {
	return a.registry.SelectSources(domain, maxSources)
}

// Fetch returns one provider's scored answer for a query, from cache when
// fresh. A provider failure yields a zero-confidence record carrying the
// error rather than a returned error.
func (a *Aggregator) Fetch(ctx context.Context, providerName, query string) model.SourceRecord {
	key := cacheKey(providerName, query)
	if cached, ok := a.cache.Get(key); ok {
		a.hits.Add(1)
		return cached.(model.SourceRecord)
	}
	a.misses.Add(1)

	record := a.fetchFresh(ctx, providerName, query)
	if record.Error == "" {
		a.cache.Set(key, record, gocache.DefaultExpiration)
	}
	return record
}

func (a *Aggregator) fetchFresh(ctx context.Context, providerName, query string) model.SourceRecord {
	record := model.SourceRecord{Name: providerName, LastUpdated: time.Now().UTC()}

	provider, ok := a.providers[providerName]
	if !ok {
		record.Error = fmt.Sprintf("no provider registered for %q", providerName)
		return record
	}
	info, ok := a.registry.Info(providerName)
	if !ok {
		record.Error = fmt.Sprintf("provider %q not in registry", providerName)
		return record
	}

	if err := a.limiter(info).Wait(ctx); err != nil {
		record.Error = err.Error()
		return record
	}

	timeout := info.Timeout
	if timeout <= 0 {
		timeout = a.cfg.FetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := provider.Fetch(fetchCtx, query)
	if err != nil {
		record.Error = err.Error()
		return record
	}

	record.Content = content.Text
	record.URL = content.URL
	record.Confidence = fetchConfidence(content, info.ReliabilityScore)
	if content.LastUpdated != nil {
		record.LastUpdated = *content.LastUpdated
	}
	return record
}

// FetchMany fans the query out to the domain's providers concurrently,
// drops records below the minimum content length, and returns the rest
// sorted descending by confidence.
func (a *Aggregator) FetchMany(ctx context.Context, query, domain string, maxSources int) []model.SourceRecord {
	infos := a.SelectSources(domain, maxSources)
	records := make([]model.SourceRecord, len(infos))

	maxConcurrent := a.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for i, info := range infos {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				records[idx] = model.SourceRecord{Name: name, Error: ctx.Err().Error()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()
			records[idx] = a.Fetch(ctx, name, query)
		}(i, info.Name)
	}
	wg.Wait()

	kept := make([]model.SourceRecord, 0, len(records))
	for _, rec := range records {
		if rec.Error != "" {
			a.logger.Printf("source %s: %s", rec.Name, rec.Error)
		}
		if len(rec.Content) < a.cfg.MinContentLength {
			continue
		}
		kept = append(kept, rec)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Confidence > kept[j].Confidence })
	return kept
}

// FetchAuthority fetches content from the provider matching an authority
// source identifier. Satisfies the graph builder's authority collaborator.
func (a *Aggregator) FetchAuthority(ctx context.Context, authoritySource, query string) (string, error) {
	name := a.registry.MatchAuthority(authoritySource)
	if name == "" {
		return "", fmt.Errorf("no provider for authority source %q", authoritySource)
	}
	record := a.Fetch(ctx, name, query)
	if record.Error != "" {
		return "", errors.New(record.Error)
	}
	return record.Content, nil
}

func (a *Aggregator) limiter(info model.ProviderInfo) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	if lim, ok := a.limiters[info.Name]; ok {
		return lim
	}
	burst := int(info.RateLimit)
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(info.RateLimit), burst)
	a.limiters[info.Name] = lim
	return lim
}

// fetchConfidence scores a fetched payload: the provider's static
// reliability plus bonuses for substance and metadata, capped at 1.
func fetchConfidence(content *model.SourceContent, reliability float64) float64 {
	confidence := reliability
	if len(content.Text) > 100 {
		confidence += 0.1
	}
	if len(content.Text) > 500 {
		confidence += 0.1
	}
	if content.Title != "" {
		confidence += 0.05
	}
	if content.URL != "" {
		confidence += 0.05
	}
	if content.LastUpdated != nil {
		confidence += 0.05
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func cacheKey(providerName, query string) string {
	return providerName + ":" + query
}

// Stats summarizes the provider table and cache behavior.
type Stats struct {
	TotalSources       int            `json:"total_sources"`
	AverageReliability float64        `json:"average_reliability"`
	SourcesByDomain    map[string]int `json:"sources_by_domain"`
	CacheHitRate       float64        `json:"cache_hit_rate"`
}

func (a *Aggregator) Stats() Stats {
	infos := a.registry.Infos()
	var sum float64
	for _, info := range infos {
		sum += info.ReliabilityScore
	}
	avg := 0.0
	if len(infos) > 0 {
		avg = sum / float64(len(infos))
	}

	byDomain := make(map[string]int, len(a.registry.Domains()))
	for domain, names := range a.registry.Domains() {
		byDomain[domain] = len(names)
	}

	hits := a.hits.Load()
	total := hits + a.misses.Load()
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		TotalSources:       len(infos),
		AverageReliability: avg,
		SourcesByDomain:    byDomain,
		CacheHitRate:       hitRate,
	}
}

// CacheStats describes the live response cache.
type CacheStats struct {
	Size    int      `json:"size"`
	Entries []string `json:"entries"`
}

func (a *Aggregator) CacheStats() CacheStats {
	items := a.cache.Items()
	entries := make([]string, 0, len(items))
	for key := range items {
		entries = append(entries, key)
	}
	sort.Strings(entries)
	return CacheStats{Size: len(items), Entries: entries}
}

// ClearCache drops all cached responses.
func (a *Aggregator) ClearCache() {
	a.cache.Flush()
}
