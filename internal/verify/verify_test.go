package verify

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
)

type stubFetcher struct {
	records []model.SourceRecord
}

func (s *stubFetcher) FetchMany(ctx context.Context, query, domain string, maxSources int) []model.SourceRecord {
	return s.records
}

func newTestEngine(records []model.SourceRecord) *Engine {
	base := knowledge.Default()
	return NewEngine(base, nlp.New(base), &stubFetcher{records: records},
		NewSessionStore(), 5, log.New(io.Discard, "", 0))
}

func agreeingSources(now time.Time) []model.SourceRecord {
	content := "The capital of India is New Delhi. It is a large city in the Indian subcontinent."
	return []model.SourceRecord{
		{Name: "Wikipedia", URL: "https://en.wikipedia.org/wiki/New_Delhi", Content: content, LastUpdated: now.AddDate(0, 0, -3)},
		{Name: "Britannica", URL: "https://www.britannica.com/place/New-Delhi", Content: content, LastUpdated: now.AddDate(0, 0, -7)},
	}
}

func TestVerifyFactAgreement(t *testing.T) {
	e := newTestEngine(agreeingSources(time.Now()))

	result, err := e.VerifyFact(context.Background(), "capital", "New Delhi", "geography")
	if err != nil {
		t.Fatalf("VerifyFact: %v", err)
	}

	if result.Fact != "capital: New Delhi" {
		t.Errorf("Fact = %q", result.Fact)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", result.Conflicts)
	}
	if !result.Resolution.Resolved || result.Resolution.Method != model.ResolveMajorityVote {
		t.Errorf("resolution = %+v, want resolved by majority_vote", result.Resolution)
	}
	if result.Resolution.Explanation != "No conflicts detected" {
		t.Errorf("explanation = %q", result.Resolution.Explanation)
	}
	if !result.Verified {
		t.Error("agreeing authoritative sources should verify")
	}
	// 0.5 base + 0.1 for two sources + 0.85 mean authority * 0.3 + 0.1 resolved.
	if diff := result.Confidence - 0.955; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want 0.955", result.Confidence)
	}
	if result.Method != model.MethodMultiSource {
		t.Errorf("method = %q, want %q", result.Method, model.MethodMultiSource)
	}
	// Authority comes from the well-known defaults.
	if result.Sources[0].AuthorityScore != 0.8 {
		t.Errorf("Wikipedia authority = %v, want 0.8", result.Sources[0].AuthorityScore)
	}
}

func TestVerifyFactContradiction(t *testing.T) {
	now := time.Now()
	sources := []model.SourceRecord{
		{Name: "Britannica", Content: "The capital is Mumbai. That other claim does not hold.", LastUpdated: now.AddDate(0, 0, -30)},
		{Name: "Wikipedia", Content: "The capital of India is New Delhi.", LastUpdated: now.AddDate(0, 0, -1)},
	}
	e := newTestEngine(sources)

	result, err := e.VerifyFact(context.Background(), "capital", "New Delhi", "geography")
	if err != nil {
		t.Fatalf("VerifyFact: %v", err)
	}

	if len(result.Conflicts) != 1 {
		t.Fatalf("conflicts = %v, want one categorical conflict", result.Conflicts)
	}
	conflict := result.Conflicts[0]
	if conflict.Type != model.ConflictCategorical || conflict.Severity != model.SeverityHigh {
		t.Errorf("conflict = %+v, want high categorical", conflict)
	}
	if result.Method != model.MethodConflictResolution {
		t.Errorf("method = %q, want %q", result.Method, model.MethodConflictResolution)
	}

	// Majority fails at 1 of 2 sources, authority preference picks Britannica
	// which lacks the value, temporal recency then trusts fresh Wikipedia.
	if result.Resolution.Method != model.ResolveTemporalRecency {
		t.Errorf("resolution method = %q, want %q", result.Resolution.Method, model.ResolveTemporalRecency)
	}
	if !result.Resolution.Resolved || result.Resolution.Confidence != 0.8 {
		t.Errorf("resolution = %+v, want resolved at 0.8", result.Resolution)
	}
	if result.Resolution.FinalValue != "New Delhi" {
		t.Errorf("final value = %q", result.Resolution.FinalValue)
	}
}

func TestVerifyFactNoSources(t *testing.T) {
	e := newTestEngine(nil)

	result, err := e.VerifyFact(context.Background(), "capital", "New Delhi", "geography")
	if err != nil {
		t.Fatalf("VerifyFact: %v", err)
	}
	if result.Verified {
		t.Error("no sources should not verify")
	}
	// 0.5 base + 0.1 resolved bonus, no source or authority contribution.
	if diff := result.Confidence - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want 0.6", result.Confidence)
	}
	if result.Method != model.MethodSingleSource {
		t.Errorf("method = %q, want %q", result.Method, model.MethodSingleSource)
	}
}

func TestVerifyFactCancelled(t *testing.T) {
	e := newTestEngine(agreeingSources(time.Now()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.VerifyFact(ctx, "capital", "New Delhi", "geography"); err == nil {
		t.Error("cancelled context should surface an error")
	}
}

func TestVerifyFactDropsFailedRecords(t *testing.T) {
	records := append(agreeingSources(time.Now()), model.SourceRecord{
		Name: "Reuters", Error: "timeout",
	})
	e := newTestEngine(records)

	result, err := e.VerifyFact(context.Background(), "capital", "New Delhi", "geography")
	if err != nil {
		t.Fatalf("VerifyFact: %v", err)
	}
	if len(result.Sources) != 2 {
		t.Errorf("sources = %d, want failed record dropped", len(result.Sources))
	}
}

func TestHasNumericalConflict(t *testing.T) {
	cases := []struct {
		name             string
		content1, content2 string
		want             bool
	}{
		{"large divergence", "population of 1000 people", "population of 400 people", true},
		{"small divergence", "population of 1000 people", "population of 900 people", false},
		{"grouped digits", "gdp was 3,700,000", "gdp was 1,200,000", true},
		{"no numbers", "no figures here", "none here either", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasNumericalConflict(tc.content1, tc.content2); got != tc.want {
				t.Errorf("hasNumericalConflict = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectTemporalConflicts(t *testing.T) {
	now := time.Now()
	fresh := model.SourceRecord{Name: "Fresh", LastUpdated: now.AddDate(0, 0, -10)}
	stale := model.SourceRecord{Name: "Stale", LastUpdated: now.AddDate(-2, 0, 0)}

	mixed := detectTemporalConflicts("population", []model.SourceRecord{fresh, stale})
	if len(mixed) != 1 {
		t.Fatalf("mixed ages = %v, want one conflict", mixed)
	}
	if mixed[0].Type != model.ConflictTemporal || mixed[0].Severity != model.SeverityMedium {
		t.Errorf("conflict = %+v, want medium temporal", mixed[0])
	}
	// Both sides of the disagreement are named: the stale sources plus the
	// freshest counterpart they conflict with.
	want := []string{"Stale", "Fresh"}
	if got := mixed[0].ConflictingSources; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("conflicting sources = %v, want %v", got, want)
	}

	older := model.SourceRecord{Name: "Older", LastUpdated: now.AddDate(0, 0, -100)}
	multi := detectTemporalConflicts("population", []model.SourceRecord{older, stale, fresh})
	if len(multi) != 1 {
		t.Fatalf("three-way ages = %v, want one conflict", multi)
	}
	if got := multi[0].ConflictingSources; len(got) != 2 || got[1] != "Fresh" {
		t.Errorf("three-way conflicting sources = %v, want freshest counterpart last", got)
	}

	if got := detectTemporalConflicts("population", []model.SourceRecord{stale, stale}); got != nil {
		t.Errorf("uniformly stale sources = %v, want none", got)
	}
	if got := detectTemporalConflicts("population", []model.SourceRecord{fresh, fresh}); got != nil {
		t.Errorf("uniformly fresh sources = %v, want none", got)
	}
}

func TestFactConfidenceMonotonicity(t *testing.T) {
	sources := []model.SourceRecord{
		{Name: "A", AuthorityScore: 0.8},
		{Name: "B", AuthorityScore: 0.6},
	}
	resolution := model.ConflictResolution{Resolved: false}

	conflict := model.FactConflict{Severity: model.SeverityMedium}
	prev := factConfidence(sources, nil, resolution)
	conflicts := []model.FactConflict{}
	for i := 0; i < 5; i++ {
		conflicts = append(conflicts, conflict)
		next := factConfidence(sources, conflicts, resolution)
		if next > prev {
			t.Fatalf("confidence rose from %v to %v after adding a conflict", prev, next)
		}
		prev = next
	}
	if prev < 0 {
		t.Errorf("confidence %v fell below zero", prev)
	}
}

func TestVerificationMethod(t *testing.T) {
	two := make([]model.SourceRecord, 2)
	one := make([]model.SourceRecord, 1)
	conflict := model.FactConflict{}

	cases := []struct {
		name      string
		sources   []model.SourceRecord
		conflicts []model.FactConflict
		want      string
	}{
		{"no conflicts many sources", two, nil, model.MethodMultiSource},
		{"no conflicts one source", one, nil, model.MethodSingleSource},
		{"no conflicts no sources", nil, nil, model.MethodSingleSource},
		{"one conflict", two, []model.FactConflict{conflict}, model.MethodConflictResolution},
		{"many conflicts", two, []model.FactConflict{conflict, conflict}, model.MethodMultiSource},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := verificationMethod(tc.sources, tc.conflicts); got != tc.want {
				t.Errorf("verificationMethod = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAuthorityScore(t *testing.T) {
	e := newTestEngine(nil)

	cases := []struct {
		source string
		domain string
		want   float64
	}{
		{"Wikipedia", "geography", 0.8},
		{"PM India Portal", "politics", 0.99},
		{"World Bank Data", "geography", 0.94},
		{"Random Blog", "geography", 0.5},
		{"Nature", "science", 0.92},
	}
	for _, tc := range cases {
		if got := e.authorityScore(tc.source, tc.domain); got != tc.want {
			t.Errorf("authorityScore(%q, %q) = %v, want %v", tc.source, tc.domain, got, tc.want)
		}
	}
}

func TestResolveStrategyOrder(t *testing.T) {
	e := newTestEngine(nil)
	conflicts := []model.FactConflict{{Severity: model.SeverityLow}}

	// A strict majority resolves immediately.
	majority := []model.SourceRecord{
		{Name: "A", Content: "value is x"},
		{Name: "B", Content: "value is x"},
		{Name: "C", Content: "something else"},
	}
	res := e.resolveConflicts("x", conflicts, majority, "general")
	if res.Method != model.ResolveMajorityVote || !res.Resolved {
		t.Errorf("resolution = %+v, want resolved majority_vote", res)
	}

	// Without any source stating the value every strategy fails.
	silent := []model.SourceRecord{
		{Name: "A", Content: "unrelated"},
		{Name: "B", Content: "also unrelated"},
	}
	res = e.resolveConflicts("x", conflicts, silent, "general")
	if res.Method != model.ResolveManualReview || res.Resolved {
		t.Errorf("resolution = %+v, want unresolved manual_review", res)
	}
	if res.Confidence != 0.3 {
		t.Errorf("manual review confidence = %v, want 0.3", res.Confidence)
	}
}

func TestStartSession(t *testing.T) {
	e := newTestEngine(agreeingSources(time.Now()))

	facts := map[string]string{
		"capital":  "New Delhi",
		"currency": "Indian Rupee",
	}
	session := e.StartSession(context.Background(), "India basics", "geography", facts)

	if session.Status != model.StatusCompleted {
		t.Fatalf("status = %q, want completed", session.Status)
	}
	if session.EndTime == nil {
		t.Error("completed session missing EndTime")
	}
	if len(session.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(session.Results))
	}

	var sum float64
	for _, result := range session.Results {
		sum += result.Confidence
	}
	want := sum / 2
	if diff := session.OverallConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("overall = %v, want mean %v", session.OverallConfidence, want)
	}

	stored, ok := e.Session(session.SessionID)
	if !ok {
		t.Fatal("session not in store")
	}
	if stored.Status != model.StatusCompleted || len(stored.Results) != 2 {
		t.Errorf("stored session = %+v", stored)
	}
	if len(e.ActiveSessions()) != 1 {
		t.Errorf("ActiveSessions = %d, want 1", len(e.ActiveSessions()))
	}
}

func TestStartSessionCancelled(t *testing.T) {
	e := newTestEngine(agreeingSources(time.Now()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := e.StartSession(ctx, "India basics", "geography", map[string]string{"capital": "New Delhi"})
	if session.Status != model.StatusFailed {
		t.Errorf("status = %q, want failed", session.Status)
	}
	if len(session.Results) != 0 {
		t.Errorf("results = %d, want none", len(session.Results))
	}
	if session.EndTime == nil {
		t.Error("failed session missing EndTime")
	}
}

func TestSessionStoreCleanup(t *testing.T) {
	store := NewSessionStore()
	old := time.Now().Add(-2 * time.Hour)

	store.Put(model.VerificationSession{
		SessionID: "done-old", Status: model.StatusCompleted, StartTime: old, EndTime: &old,
	})
	store.Put(model.VerificationSession{
		SessionID: "running-old", Status: model.StatusRunning, StartTime: old,
	})
	recent := time.Now()
	store.Put(model.VerificationSession{
		SessionID: "done-recent", Status: model.StatusCompleted, StartTime: recent, EndTime: &recent,
	})

	if removed := store.Cleanup(time.Hour); removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
	if _, ok := store.Get("done-old"); ok {
		t.Error("expired session survived cleanup")
	}
	if _, ok := store.Get("running-old"); !ok {
		t.Error("running session removed by cleanup")
	}
	if _, ok := store.Get("done-recent"); !ok {
		t.Error("recent session removed by cleanup")
	}
}

func TestSessionStoreCopies(t *testing.T) {
	store := NewSessionStore()
	session := model.VerificationSession{
		SessionID: "s1",
		Status:    model.StatusCompleted,
		Results:   []model.VerificationResult{{Fact: "capital: New Delhi"}},
	}
	store.Put(session)

	got, _ := store.Get("s1")
	got.Results[0].Fact = "mutated"

	again, _ := store.Get("s1")
	if again.Results[0].Fact != "capital: New Delhi" {
		t.Error("store returned aliased results slice")
	}
}
