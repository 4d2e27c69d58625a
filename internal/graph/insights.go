package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

// expectedRelationships are the relationship types a well-covered graph is
// expected to contain; their absence is reported as a knowledge gap.
var expectedRelationships = []string{"is_a", "part_of", "located_in", "founded_by"}

// confidenceBuckets are the histogram ranges for Insights, low to high.
var confidenceBuckets = []string{"0.0-0.2", "0.2-0.4", "0.4-0.6", "0.6-0.8", "0.8-1.0"}

// RelatedConcepts finds up to limit concept nodes related to an entity by
// querying the configured searcher. Without a searcher it returns nothing.
func (b *Builder) RelatedConcepts(ctx context.Context, entity, domain string, limit int) []model.KnowledgeNode {
	if b.Searcher == nil || limit <= 0 {
		return nil
	}
	records := b.Searcher.FetchMany(ctx, entity, domain, limit)
	nodes := make([]model.KnowledgeNode, 0, len(records))
	for _, rec := range records {
		if len(nodes) == limit {
			break
		}
		if rec.Error != "" {
			continue
		}
		nodes = append(nodes, model.KnowledgeNode{
			ID:    NodeID(rec.Name + " " + entity),
			Label: entity,
			Type:  "related_concept",
			Properties: map[string]interface{}{
				"description": summarize(rec.Content),
				"source_url":  rec.URL,
			},
			Confidence:  rec.Confidence,
			Sources:     []string{rec.Name},
			LastUpdated: rec.LastUpdated,
		})
	}
	return nodes
}

// SemanticSimilarity scores two entities on token Jaccard overlap plus a
// 0.2 boost per domain whose keywords both entities touch, capped at 1.
func (b *Builder) SemanticSimilarity(entity1, entity2 string) float64 {
	words1 := strings.Fields(strings.ToLower(entity1))
	words2 := strings.Fields(strings.ToLower(entity2))

	set1 := make(map[string]bool, len(words1))
	for _, w := range words1 {
		set1[w] = true
	}
	set2 := make(map[string]bool, len(words2))
	for _, w := range words2 {
		set2[w] = true
	}

	intersection := 0
	union := len(set2)
	for w := range set1 {
		if set2[w] {
			intersection++
		} else {
			union++
		}
	}

	var similarity float64
	if union > 0 {
		similarity = float64(intersection) / float64(union)
	}

	for _, domain := range b.base.Domains() {
		profile, ok := b.base.Profile(domain)
		if !ok {
			continue
		}
		kw := make(map[string]bool, len(profile.Keywords))
		for _, k := range profile.Keywords {
			kw[strings.ToLower(k)] = true
		}
		if hitsKeywords(set1, kw) && hitsKeywords(set2, kw) {
			similarity += 0.2
		}
	}

	if similarity > 1 {
		similarity = 1
	}
	return similarity
}

func hitsKeywords(words, keywords map[string]bool) bool {
	for w := range words {
		if keywords[w] {
			return true
		}
	}
	return false
}

// Insights summarizes a built graph: its strongest nodes and edges, a
// confidence histogram, and a gap report.
func (b *Builder) Insights(g *model.KnowledgeGraph) model.GraphInsights {
	nodes := make([]model.KnowledgeNode, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Confidence > nodes[j].Confidence })

	keyConcepts := make([]string, 0, 5)
	for _, n := range nodes {
		if len(keyConcepts) == 5 {
			break
		}
		keyConcepts = append(keyConcepts, n.Label)
	}

	edges := make([]model.KnowledgeEdge, len(g.Edges))
	copy(edges, g.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Confidence > edges[j].Confidence })

	important := make([]string, 0, 5)
	for _, e := range edges {
		if len(important) == 5 {
			break
		}
		important = append(important, e.Source+" "+e.Relationship+" "+e.Target)
	}

	return model.GraphInsights{
		KeyConcepts:            keyConcepts,
		ImportantRelationships: important,
		KnowledgeGaps:          knowledgeGaps(g),
		ConfidenceDistribution: confidenceDistribution(g),
	}
}

func knowledgeGaps(g *model.KnowledgeGraph) []string {
	var gaps []string

	var lowConfidence []string
	for _, n := range g.Nodes {
		if n.Confidence < 0.5 {
			lowConfidence = append(lowConfidence, n.Label)
		}
	}
	if len(lowConfidence) > 0 {
		gaps = append(gaps, "Low confidence entities: "+strings.Join(lowConfidence, ", "))
	}

	connected := make(map[string]bool)
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	var isolated []string
	for _, n := range g.Nodes {
		if !connected[n.ID] {
			isolated = append(isolated, n.Label)
		}
	}
	if len(isolated) > 0 {
		gaps = append(gaps, "Isolated entities: "+strings.Join(isolated, ", "))
	}

	existing := make(map[string]bool)
	for _, e := range g.Edges {
		existing[e.Relationship] = true
	}
	var missing []string
	for _, rel := range expectedRelationships {
		if !existing[rel] {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		gaps = append(gaps, "Missing relationship types: "+strings.Join(missing, ", "))
	}

	return gaps
}

func confidenceDistribution(g *model.KnowledgeGraph) map[string]int {
	dist := make(map[string]int, len(confidenceBuckets))
	for _, bucket := range confidenceBuckets {
		dist[bucket] = 0
	}
	for _, n := range g.Nodes {
		switch {
		case n.Confidence >= 0.8:
			dist["0.8-1.0"]++
		case n.Confidence >= 0.6:
			dist["0.6-0.8"]++
		case n.Confidence >= 0.4:
			dist["0.4-0.6"]++
		case n.Confidence >= 0.2:
			dist["0.2-0.4"]++
		default:
			dist["0.0-0.2"]++
		}
	}
	return dist
}

// summarize truncates source content for use as a node description.
func summarize(content string) string {
	const max = 200
	if len(content) <= max {
		return content
	}
	cut := content[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
