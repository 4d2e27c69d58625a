// Package verify orchestrates fact verification against multiple sources:
// per-fact source gathering, conflict detection, ordered conflict
// resolution and a session lifecycle around batches of facts.
package verify

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
)

// Fetcher gathers candidate sources for a query. Satisfied by the source
// aggregator.
type Fetcher interface {
	FetchMany(ctx context.Context, query, domain string, maxSources int) []model.SourceRecord
}

// defaultAuthorityScores maps well-known source name fragments to trust
// scores, checked in order after the domain authority list.
var defaultAuthorityScores = []struct {
	fragment string
	score    float64
}{
	{"wikipedia", 0.8},
	{"britannica", 0.9},
	{"government", 0.95},
	{"pm india", 0.99},
	{"scientific american", 0.85},
	{"nature", 0.92},
	{"techcrunch", 0.8},
	{"bbc", 0.88},
	{"reuters", 0.87},
	{"world bank", 0.94},
}

const fallbackAuthorityScore = 0.5

// maxConcurrentVerifications caps in-flight fact verifications per session.
const maxConcurrentVerifications = 10

// Engine verifies facts and manages verification sessions.
type Engine struct {
	base       *knowledge.Base
	analyzer   *nlp.Analyzer
	fetcher    Fetcher
	store      *SessionStore
	maxSources int
	logger     *log.Logger
}

// NewEngine wires a verification engine. maxSources caps how many providers
// answer each fact; values below one fall back to five. A nil logger logs
// to the default destination.
func NewEngine(base *knowledge.Base, analyzer *nlp.Analyzer, fetcher Fetcher, store *SessionStore, maxSources int, logger *log.Logger) *Engine {
	if maxSources < 1 {
		maxSources = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		base:       base,
		analyzer:   analyzer,
		fetcher:    fetcher,
		store:      store,
		maxSources: maxSources,
		logger:     logger,
	}
}

// StartSession verifies every fact in the batch concurrently and returns
// the completed session. Individual fact failures are logged and excluded
// from the results; only context cancellation fails the whole session.
func (e *Engine) StartSession(ctx context.Context, query, domain string, facts map[string]string) model.VerificationSession {
	session := model.VerificationSession{
		SessionID: uuid.NewString(),
		Query:     query,
		Domain:    domain,
		StartTime: time.Now(),
		Status:    model.StatusRunning,
	}
	e.store.Put(session)
	e.logger.Printf("verification session %s started: %q (%d facts)", session.SessionID, query, len(facts))

	type outcome struct {
		result model.VerificationResult
		err    error
	}

	factTypes := make([]string, 0, len(facts))
	for factType := range facts {
		factTypes = append(factTypes, factType)
	}
	sort.Strings(factTypes)

	outcomes := make([]outcome, len(factTypes))
	sem := make(chan struct{}, maxConcurrentVerifications)
	var wg sync.WaitGroup
	for i, factType := range factTypes {
		wg.Add(1)
		go func(i int, factType, factValue string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			result, err := e.VerifyFact(ctx, factType, factValue, domain)
			outcomes[i] = outcome{result: result, err: err}
		}(i, factType, facts[factType])
	}
	wg.Wait()

	for i, out := range outcomes {
		if out.err != nil {
			e.logger.Printf("fact verification failed for %q: %v", factTypes[i], out.err)
			continue
		}
		session.Results = append(session.Results, out.result)
	}

	now := time.Now()
	session.EndTime = &now
	if ctx.Err() != nil {
		session.Status = model.StatusFailed
	} else {
		session.Status = model.StatusCompleted
		session.OverallConfidence = overallConfidence(session.Results)
	}
	e.store.Put(session)

	e.logger.Printf("verification session %s %s: %d/%d facts, overall confidence %.2f",
		session.SessionID, session.Status, len(session.Results), len(facts), session.OverallConfidence)
	return session
}

// VerifyFact verifies a single fact against multiple sources. It returns an
// error only when the context is cancelled; source-level failures degrade
// the result instead.
func (e *Engine) VerifyFact(ctx context.Context, factType, factValue, domain string) (model.VerificationResult, error) {
	sources := e.fetcher.FetchMany(ctx, factType+" "+factValue, domain, e.maxSources)
	if err := ctx.Err(); err != nil {
		return model.VerificationResult{}, fmt.Errorf("verify %s: %w", factType, err)
	}

	live := sources[:0]
	for _, src := range sources {
		if src.Error != "" {
			continue
		}
		src.AuthorityScore = e.authorityScore(src.Name, domain)
		live = append(live, src)
	}
	sources = live

	conflicts := e.detectConflicts(factType, factValue, sources)
	resolution := e.resolveConflicts(factValue, conflicts, sources, domain)
	confidence := factConfidence(sources, conflicts, resolution)

	return model.VerificationResult{
		Fact:       factType + ": " + factValue,
		Verified:   resolution.Resolved && confidence > 0.6,
		Confidence: confidence,
		Sources:    sources,
		Conflicts:  conflicts,
		Resolution: resolution,
		Timestamp:  time.Now(),
		Method:     verificationMethod(sources, conflicts),
	}, nil
}

// ActiveSessions returns every stored session.
func (e *Engine) ActiveSessions() []model.VerificationSession {
	return e.store.All()
}

// Session looks up a session by id.
func (e *Engine) Session(id string) (model.VerificationSession, bool) {
	return e.store.Get(id)
}

// Cleanup drops terminal sessions older than retention and reports the count.
func (e *Engine) Cleanup(retention time.Duration) int {
	return e.store.Cleanup(retention)
}

// authorityScore rates a source name for a domain: the domain's authority
// list first, then well-known defaults, then a neutral floor.
func (e *Engine) authorityScore(sourceName, domain string) float64 {
	lower := strings.ToLower(sourceName)

	factors := e.base.ConfidenceFactors(domain)
	for _, auth := range e.base.AuthoritySources(domain) {
		if strings.Contains(lower, strings.ToLower(auth)) {
			if score, ok := factors[auth]; ok {
				return score
			}
			return 0.9
		}
	}

	for _, def := range defaultAuthorityScores {
		if strings.Contains(lower, def.fragment) {
			return def.score
		}
	}
	return fallbackAuthorityScore
}

// factConfidence combines source count, mean authority, conflict penalties
// and the resolution outcome into a clamped confidence.
func factConfidence(sources []model.SourceRecord, conflicts []model.FactConflict, resolution model.ConflictResolution) float64 {
	confidence := 0.5

	bonus := float64(len(sources)) * 0.05
	if bonus > 0.3 {
		bonus = 0.3
	}
	confidence += bonus

	if len(sources) > 0 {
		var total float64
		for _, src := range sources {
			total += src.AuthorityScore
		}
		confidence += total / float64(len(sources)) * 0.3
	}

	for _, conflict := range conflicts {
		confidence -= conflict.Severity.Penalty()
	}

	if resolution.Resolved {
		confidence += 0.1
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// verificationMethod labels how the verdict was reached. With no conflicts
// the source count decides; one conflict means resolution did the work.
func verificationMethod(sources []model.SourceRecord, conflicts []model.FactConflict) string {
	switch {
	case len(conflicts) == 0 && len(sources) > 1:
		return model.MethodMultiSource
	case len(conflicts) == 0:
		return model.MethodSingleSource
	case len(conflicts) == 1:
		return model.MethodConflictResolution
	default:
		return model.MethodMultiSource
	}
}

func overallConfidence(results []model.VerificationResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var total float64
	for _, result := range results {
		total += result.Confidence
	}
	return total / float64(len(results))
}
