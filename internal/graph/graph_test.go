package graph

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
)

func newBuilder() *Builder {
	base := knowledge.Default()
	return NewBuilder(base, nlp.New(base), log.New(io.Discard, "", 0))
}

type stubEnricher struct {
	enrichment *Enrichment
	err        error
}

func (s *stubEnricher) Lookup(ctx context.Context, label string) (*Enrichment, error) {
	return s.enrichment, s.err
}

type stubAuthority struct {
	content string
	err     error
}

func (s *stubAuthority) FetchAuthority(ctx context.Context, source, query string) (string, error) {
	return s.content, s.err
}

type stubSearcher struct {
	records []model.SourceRecord
}

func (s *stubSearcher) FetchMany(ctx context.Context, query, domain string, maxSources int) []model.SourceRecord {
	return s.records
}

func TestNodeID(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"New Delhi", "new_delhi"},
		{"C++ Programming", "c_programming"},
		{"  spaced   out  ", "spaced_out"},
		{"Already_fine", "already_fine"},
	}
	for _, tt := range tests {
		if got := NodeID(tt.label); got != tt.want {
			t.Errorf("NodeID(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	b := newBuilder()
	g := b.Build(context.Background(), "Mr. Edison created Phonograph.", "science")

	if len(g.Nodes) == 0 {
		t.Fatal("Expected nodes")
	}
	if g.Metadata.TotalNodes != len(g.Nodes) || g.Metadata.TotalEdges != len(g.Edges) {
		t.Error("Metadata counts do not match graph contents")
	}
	if len(g.Metadata.Domains) != 1 || g.Metadata.Domains[0] != "science" {
		t.Errorf("Expected domains [science], got %v", g.Metadata.Domains)
	}

	for _, n := range g.Nodes {
		if n.ID != NodeID(n.Label) {
			t.Errorf("Node %q has ID %q, want %q", n.Label, n.ID, NodeID(n.Label))
		}
		if len(n.Sources) == 0 || n.Sources[0] != "text_extraction" {
			t.Errorf("Node %q missing extraction provenance: %v", n.Label, n.Sources)
		}
	}

	if len(g.Edges) == 0 {
		t.Fatal("Expected an edge between Edison and Phonograph")
	}
}

func TestBuild_NoDanglingEdges(t *testing.T) {
	b := newBuilder()
	texts := []string{
		"Mr. Edison created Phonograph in America.",
		"Paris is a city. The weather in Paris was nice.",
		"Dr. Curie discovered Radium. Curie founded Institute.",
		"No entities here at all, just lowercase words.",
		"",
	}
	for _, text := range texts {
		g := b.Build(context.Background(), text, "general")
		ids := make(map[string]bool)
		for _, n := range g.Nodes {
			ids[n.ID] = true
		}
		for _, e := range g.Edges {
			if !ids[e.Source] || !ids[e.Target] {
				t.Errorf("Dangling edge %q -> %q in graph of %q", e.Source, e.Target, text)
			}
		}
	}
}

func TestBuild_Enrichment(t *testing.T) {
	b := newBuilder()
	b.Enricher = &stubEnricher{enrichment: &Enrichment{
		Properties: map[string]interface{}{"external_id": "Q42"},
		Source:     "wikidata",
	}}

	g := b.Build(context.Background(), "Mr. Edison created Phonograph.", "science")
	if len(g.Nodes) == 0 {
		t.Fatal("Expected nodes")
	}
	for _, n := range g.Nodes {
		if n.Properties["external_id"] != "Q42" {
			t.Errorf("Node %q not enriched", n.Label)
		}
		if n.Confidence > 1 {
			t.Errorf("Node %q confidence %f exceeds 1", n.Label, n.Confidence)
		}
		found := false
		for _, s := range n.Sources {
			if s == "wikidata" {
				found = true
			}
		}
		if !found {
			t.Errorf("Node %q missing enrichment provenance: %v", n.Label, n.Sources)
		}
	}
}

func TestBuild_EnrichmentFailureLeavesNodeUnmodified(t *testing.T) {
	plain := newBuilder()
	before := plain.Build(context.Background(), "Mr. Edison created Phonograph.", "science")

	failing := newBuilder()
	failing.Enricher = &stubEnricher{err: errors.New("lookup unavailable")}
	after := failing.Build(context.Background(), "Mr. Edison created Phonograph.", "science")

	if len(before.Nodes) != len(after.Nodes) {
		t.Fatal("Node count changed on enrichment failure")
	}
	for i := range before.Nodes {
		if before.Nodes[i].Confidence != after.Nodes[i].Confidence {
			t.Errorf("Node %q confidence changed on enrichment failure", after.Nodes[i].Label)
		}
		if len(before.Nodes[i].Sources) != len(after.Nodes[i].Sources) {
			t.Errorf("Node %q sources changed on enrichment failure", after.Nodes[i].Label)
		}
	}
}

func TestVerifyFact(t *testing.T) {
	b := newBuilder()

	t.Run("pattern match only", func(t *testing.T) {
		check := b.VerifyFact(context.Background(), "capital", "capital: New Delhi", "geography")
		if check.Confidence != 0.3 {
			t.Errorf("Expected confidence 0.3, got %f", check.Confidence)
		}
		if check.Method != MethodPatternMatching {
			t.Errorf("Expected pattern_matching, got %s", check.Method)
		}
		if len(check.SupportingSources) != 1 || check.SupportingSources[0] != "domain_knowledge" {
			t.Errorf("Expected domain_knowledge support, got %v", check.SupportingSources)
		}
	})

	t.Run("no match", func(t *testing.T) {
		check := b.VerifyFact(context.Background(), "capital", "New Delhi", "geography")
		if check.Confidence != 0 {
			t.Errorf("Expected zero confidence, got %f", check.Confidence)
		}
	})

	t.Run("authority confirmation clamps at 1", func(t *testing.T) {
		b.Authority = &stubAuthority{content: "sources agree the capital: New Delhi is correct"}
		defer func() { b.Authority = nil }()

		check := b.VerifyFact(context.Background(), "capital", "capital: New Delhi", "geography")
		if check.Confidence != 1 {
			t.Errorf("Expected clamped confidence 1, got %f", check.Confidence)
		}
		if check.Method != MethodCrossSourceAgreement {
			t.Errorf("Expected cross_source_agreement, got %s", check.Method)
		}
		if len(check.SupportingSources) < 2 {
			t.Errorf("Expected multiple supporters, got %v", check.SupportingSources)
		}
	})

	t.Run("authority errors are absorbed", func(t *testing.T) {
		b.Authority = &stubAuthority{err: errors.New("unreachable")}
		defer func() { b.Authority = nil }()

		check := b.VerifyFact(context.Background(), "capital", "capital: New Delhi", "geography")
		if check.Confidence != 0.3 {
			t.Errorf("Expected confidence 0.3 with failing authority, got %f", check.Confidence)
		}
	})
}

func TestSemanticSimilarity(t *testing.T) {
	b := newBuilder()

	if got := b.SemanticSimilarity("new delhi", "new delhi"); got != 1 {
		t.Errorf("Identical entities should score 1, got %f", got)
	}
	if got := b.SemanticSimilarity("apple", "orange"); got != 0 {
		t.Errorf("Disjoint entities should score 0, got %f", got)
	}

	// Both touch geography keywords, so the overlap score gets a boost.
	plain := b.SemanticSimilarity("north region", "south region")
	boosted := b.SemanticSimilarity("north capital", "south capital")
	if boosted <= plain {
		t.Errorf("Expected domain boost: plain=%f boosted=%f", plain, boosted)
	}

	for _, pair := range [][2]string{{"a b c", "c d e"}, {"", ""}, {"capital city", "capital country"}} {
		got := b.SemanticSimilarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q,%q) = %f outside [0,1]", pair[0], pair[1], got)
		}
	}
}

func TestRelatedConcepts(t *testing.T) {
	b := newBuilder()
	now := time.Now()
	b.Searcher = &stubSearcher{records: []model.SourceRecord{
		{Name: "Wikipedia", URL: "https://en.wikipedia.org/wiki/Delhi", Content: "Delhi article", Confidence: 0.9, LastUpdated: now},
		{Name: "Britannica", Content: "Delhi entry", Confidence: 0.8, LastUpdated: now},
		{Name: "Broken", Error: "timeout"},
	}}

	nodes := b.RelatedConcepts(context.Background(), "Delhi", "geography", 5)
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 related nodes, got %d", len(nodes))
	}
	if nodes[0].Sources[0] != "Wikipedia" {
		t.Errorf("Expected Wikipedia provenance, got %v", nodes[0].Sources)
	}

	if got := b.RelatedConcepts(context.Background(), "Delhi", "geography", 1); len(got) != 1 {
		t.Errorf("Expected limit to cap results, got %d", len(got))
	}

	b.Searcher = nil
	if got := b.RelatedConcepts(context.Background(), "Delhi", "geography", 5); got != nil {
		t.Errorf("Expected nil without a searcher, got %v", got)
	}
}

func TestInsights(t *testing.T) {
	b := newBuilder()
	g := &model.KnowledgeGraph{
		Nodes: []model.KnowledgeNode{
			{ID: "a", Label: "A", Confidence: 0.9},
			{ID: "b", Label: "B", Confidence: 0.7},
			{ID: "c", Label: "C", Confidence: 0.4},
			{ID: "d", Label: "D", Confidence: 0.1},
			{ID: "e", Label: "E", Confidence: 0.65},
			{ID: "f", Label: "F", Confidence: 0.85},
		},
		Edges: []model.KnowledgeEdge{
			{Source: "a", Target: "b", Relationship: "is_a", Confidence: 0.7},
			{Source: "b", Target: "c", Relationship: "part_of", Confidence: 0.9},
		},
	}

	insights := b.Insights(g)

	if len(insights.KeyConcepts) != 5 {
		t.Errorf("Expected 5 key concepts, got %v", insights.KeyConcepts)
	}
	if insights.KeyConcepts[0] != "A" {
		t.Errorf("Expected A as top concept, got %s", insights.KeyConcepts[0])
	}
	if len(insights.ImportantRelationships) != 2 {
		t.Errorf("Expected 2 relationships, got %v", insights.ImportantRelationships)
	}
	if insights.ImportantRelationships[0] != "b part_of c" {
		t.Errorf("Expected strongest edge first, got %s", insights.ImportantRelationships[0])
	}

	total := 0
	for _, count := range insights.ConfidenceDistribution {
		total += count
	}
	if total != len(g.Nodes) {
		t.Errorf("Histogram counts %d nodes, graph has %d", total, len(g.Nodes))
	}
	if insights.ConfidenceDistribution["0.8-1.0"] != 2 {
		t.Errorf("Expected 2 nodes in top bucket, got %d", insights.ConfidenceDistribution["0.8-1.0"])
	}

	if len(insights.KnowledgeGaps) == 0 {
		t.Fatal("Expected knowledge gaps")
	}
	foundIsolated := false
	for _, gap := range insights.KnowledgeGaps {
		if gap == "Isolated entities: D, E, F" {
			foundIsolated = true
		}
	}
	if !foundIsolated {
		t.Errorf("Expected isolated-entity gap, got %v", insights.KnowledgeGaps)
	}
}
