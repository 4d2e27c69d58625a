package model

import "time"

// KnowledgeNode is one typed entity in a knowledge graph.
// Enrichment is additive: confidence never decreases and sources are never removed.
type KnowledgeNode struct {
	ID          string                 `json:"id"`    // Derived deterministically from the label
	Label       string                 `json:"label"` // Human-readable entity text
	Type        string                 `json:"type"`
	Properties  map[string]interface{} `json:"properties"`
	Confidence  float64                `json:"confidence"`
	Sources     []string               `json:"sources"` // Provenance tags, e.g. "text_extraction"
	LastUpdated time.Time              `json:"last_updated"`
}

// KnowledgeEdge connects two nodes that both exist in the same graph.
// Dangling edges are never constructed.
type KnowledgeEdge struct {
	Source       string   `json:"source"` // Node ID
	Target       string   `json:"target"` // Node ID
	Relationship string   `json:"relationship"`
	Confidence   float64  `json:"confidence"`
	Evidence     []string `json:"evidence"`
}

// GraphMetadata carries counts and the domains a graph touched
type GraphMetadata struct {
	TotalNodes  int       `json:"total_nodes"`
	TotalEdges  int       `json:"total_edges"`
	Domains     []string  `json:"domains"`
	LastUpdated time.Time `json:"last_updated"`
}

// KnowledgeGraph is the node/edge structure built for one verification call
type KnowledgeGraph struct {
	Nodes    []KnowledgeNode `json:"nodes"`
	Edges    []KnowledgeEdge `json:"edges"`
	Metadata GraphMetadata   `json:"metadata"`
}

// Node returns the node with the given ID, or nil.
func (g *KnowledgeGraph) Node(id string) *KnowledgeNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// FactCheck is the outcome of checking a single (type, value) assertion
// against domain patterns and authority sources. The caller decides the
// pass/fail threshold; only confidence is reported here.
type FactCheck struct {
	Fact               string   `json:"fact"`
	Confidence         float64  `json:"confidence"`
	SupportingSources  []string `json:"supporting_sources"`
	ConflictingSources []string `json:"conflicting_sources"`
	Method             string   `json:"verification_method"`
}

// GraphInsights summarizes an already-built graph
type GraphInsights struct {
	KeyConcepts            []string       `json:"key_concepts"`            // Top nodes by confidence
	ImportantRelationships []string       `json:"important_relationships"` // Top edges by confidence
	KnowledgeGaps          []string       `json:"knowledge_gaps"`
	ConfidenceDistribution map[string]int `json:"confidence_distribution"` // Bucket -> node count
}
