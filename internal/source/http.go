package source

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
)

// newHTTPClient builds a client honoring the configured proxies and TLS mode.
func newHTTPClient(cfg model.HTTPConfig, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: proxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// proxyFunc selects the configured proxy per scheme, falling back to the
// process environment when none is set.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// robotsChecker caches per-host robots.txt verdicts.
type robotsChecker struct {
	mu        sync.RWMutex
	cache     map[string]*robotstxt.RobotsData
	client    *http.Client
	userAgent string
}

func newRobotsChecker(client *http.Client, userAgent string) *robotsChecker {
	return &robotsChecker{
		cache:     make(map[string]*robotstxt.RobotsData),
		client:    client,
		userAgent: userAgent,
	}
}

// allowed reports whether rawURL may be fetched. An unreachable robots.txt
// allows by default.
func (r *robotsChecker) allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	r.mu.RLock()
	data, ok := r.cache[parsed.Host]
	r.mu.RUnlock()

	if !ok {
		data = r.fetch(ctx, parsed.Scheme+"://"+parsed.Host+"/robots.txt")
		if data == nil {
			return true
		}
		r.mu.Lock()
		r.cache[parsed.Host] = data
		r.mu.Unlock()
	}
	return data.TestAgent(parsed.Path, r.userAgent)
}

func (r *robotsChecker) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}

// HTTPProvider fetches and cleans an HTML page per query. The query URL is
// a printf pattern whose single %s receives the escaped query.
type HTTPProvider struct {
	name     string
	queryURL string
	client   *http.Client
	robots   *robotsChecker
	cfg      model.HTTPConfig
}

func NewHTTPProvider(name, queryURL string, cfg model.HTTPConfig, timeout time.Duration) *HTTPProvider {
	client := newHTTPClient(cfg, timeout)
	return &HTTPProvider{
		name:     name,
		queryURL: queryURL,
		client:   client,
		robots:   newRobotsChecker(client, cfg.UserAgent),
		cfg:      cfg,
	}
}

func (p *HTTPProvider) Name() string { return p.name }

func (p *HTTPProvider) Fetch(ctx context.Context, query string) (*model.SourceContent, error) {
	target := fmt.Sprintf(p.queryURL, url.QueryEscape(query))
	if !p.robots.allowed(ctx, target) {
		return nil, fmt.Errorf("%s: disallowed by robots.txt", target)
	}

	body, header, err := p.get(ctx, target)
	if err != nil {
		return nil, err
	}

	content := &model.SourceContent{
		Text:     knowledge.CleanText(string(body)),
		Title:    htmlTitle(string(body)),
		URL:      target,
		Language: "en",
	}
	if lm := header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			content.LastUpdated = &t
		}
	}
	return content, nil
}

func (p *HTTPProvider) get(ctx context.Context, target string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	maxBody := p.cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 2_000_000
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", target, err)
	}
	return body, resp.Header, nil
}

func htmlTitle(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// WikipediaProvider queries the Wikipedia REST page-summary endpoint.
type WikipediaProvider struct {
	baseURL string
	client  *http.Client
	robots  *robotsChecker
	cfg     model.HTTPConfig
}

func NewWikipediaProvider(cfg model.HTTPConfig, timeout time.Duration) *WikipediaProvider {
	client := newHTTPClient(cfg, timeout)
	return &WikipediaProvider{
		baseURL: "https://en.wikipedia.org/api/rest_v1",
		client:  client,
		robots:  newRobotsChecker(client, cfg.UserAgent),
		cfg:     cfg,
	}
}

func (p *WikipediaProvider) Name() string { return "Wikipedia" }

// wikiSummary is the subset of the page-summary response the engine uses.
type wikiSummary struct {
	Title       string    `json:"title"`
	Extract     string    `json:"extract"`
	Timestamp   time.Time `json:"timestamp"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (p *WikipediaProvider) Fetch(ctx context.Context, query string) (*model.SourceContent, error) {
	target := p.baseURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(query, " ", "_"))
	if !p.robots.allowed(ctx, target) {
		return nil, fmt.Errorf("%s: disallowed by robots.txt", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia fetch: status %d", resp.StatusCode)
	}

	var summary wikiSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("wikipedia decode: %w", err)
	}

	content := &model.SourceContent{
		Text:     summary.Extract,
		Title:    summary.Title,
		URL:      summary.ContentURLs.Desktop.Page,
		Language: "en",
	}
	if !summary.Timestamp.IsZero() {
		ts := summary.Timestamp
		content.LastUpdated = &ts
	}
	return content, nil
}
