// Package graph builds knowledge graphs from analyzed text and answers
// read-only queries over them. Nodes come from extracted entities, edges
// from relationship triples whose endpoints both resolved to nodes.
package graph

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
)

// provenanceExtraction tags nodes created directly from text.
const provenanceExtraction = "text_extraction"

// Enrichment is external knowledge contributed for one node label.
type Enrichment struct {
	Properties map[string]interface{}
	Source     string // Provenance tag appended to the node
}

// ConceptEnricher looks up external knowledge for a node label.
// Returning (nil, nil) means no information; errors are absorbed by the
// builder. Enrichment is additive: it never lowers node confidence.
type ConceptEnricher interface {
	Lookup(ctx context.Context, label string) (*Enrichment, error)
}

// AuthorityLookup fetches content from a named authority source.
type AuthorityLookup interface {
	FetchAuthority(ctx context.Context, source, query string) (string, error)
}

// ConceptSearcher fetches ranked source material about an entity.
type ConceptSearcher interface {
	FetchMany(ctx context.Context, query, domain string, maxSources int) []model.SourceRecord
}

// Builder turns text into knowledge graphs. The collaborator fields are
// optional; a nil collaborator disables the corresponding step.
type Builder struct {
	base     *knowledge.Base
	analyzer *nlp.Analyzer
	logger   *log.Logger

	Enricher  ConceptEnricher
	Authority AuthorityLookup
	Searcher  ConceptSearcher
}

func NewBuilder(base *knowledge.Base, analyzer *nlp.Analyzer, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{base: base, analyzer: analyzer, logger: logger}
}

// Build constructs a knowledge graph for text in the given domain.
// Relationships whose subject or object did not surface as a node are
// dropped, so every edge endpoint is a valid node ID. Enrichment is
// best-effort: a failing lookup leaves the node unmodified.
func (b *Builder) Build(ctx context.Context, text, domain string) *model.KnowledgeGraph {
	now := time.Now().UTC()

	entities := b.analyzer.ExtractEntities(text)
	nodes := make([]model.KnowledgeNode, 0, len(entities))
	byLabel := make(map[string]int)
	for _, ent := range entities {
		node := b.nodeFromEntity(ent, domain, now)
		if _, seen := byLabel[node.Label]; !seen {
			byLabel[node.Label] = len(nodes)
		}
		nodes = append(nodes, node)
	}

	semantics := b.analyzer.AnalyzeSemantics(text)
	edges := make([]model.KnowledgeEdge, 0, len(semantics.Relationships))
	for _, rel := range semantics.Relationships {
		si, ok := byLabel[rel.Subject]
		if !ok {
			continue
		}
		ti, ok := byLabel[rel.Object]
		if !ok {
			continue
		}
		edges = append(edges, model.KnowledgeEdge{
			Source:       nodes[si].ID,
			Target:       nodes[ti].ID,
			Relationship: rel.Predicate,
			Confidence:   rel.Confidence,
			Evidence:     []string{"Text: " + rel.Subject + " " + rel.Predicate + " " + rel.Object},
		})
	}

	if b.Enricher != nil {
		for i := range nodes {
			b.enrichNode(ctx, &nodes[i])
		}
	}

	return &model.KnowledgeGraph{
		Nodes: nodes,
		Edges: edges,
		Metadata: model.GraphMetadata{
			TotalNodes:  len(nodes),
			TotalEdges:  len(edges),
			Domains:     []string{domain},
			LastUpdated: now,
		},
	}
}

func (b *Builder) nodeFromEntity(ent model.Entity, domain string, now time.Time) model.KnowledgeNode {
	node := model.KnowledgeNode{
		ID:    NodeID(ent.Text),
		Label: ent.Text,
		Type:  string(ent.Label),
		Properties: map[string]interface{}{
			"description":   ent.Description,
			"reference_url": ent.ReferenceURL,
			"confidence":    ent.Confidence,
		},
		Confidence:  ent.Confidence,
		Sources:     []string{provenanceExtraction},
		LastUpdated: now,
	}

	// Overlay domain fact-pattern matches onto the node.
	if profile, ok := b.base.Profile(domain); ok {
		for _, fp := range profile.FactPatterns {
			m := fp.Pattern.FindStringSubmatch(ent.Text)
			if m != nil && fp.Group < len(m) {
				node.Properties[fp.Name] = m[fp.Group]
			}
		}
	}
	return node
}

// enrichNode applies external knowledge to a node. Confidence rises by at
// most 0.1 per enrichment and prior sources are kept.
func (b *Builder) enrichNode(ctx context.Context, node *model.KnowledgeNode) {
	info, err := b.Enricher.Lookup(ctx, node.Label)
	if err != nil {
		b.logger.Printf("enrich %q: %v", node.Label, err)
		return
	}
	if info == nil {
		return
	}
	for k, v := range info.Properties {
		node.Properties[k] = v
	}
	node.Confidence += 0.1
	if node.Confidence > 1 {
		node.Confidence = 1
	}
	if info.Source != "" {
		node.Sources = append(node.Sources, info.Source)
	}
}

var nonID = regexp.MustCompile(`[^a-z0-9_]`)

// NodeID derives the deterministic node ID for a label: lowercased,
// spaces to underscores, all other non-alphanumerics stripped.
func NodeID(label string) string {
	id := strings.ToLower(label)
	id = strings.Join(strings.Fields(id), "_")
	return nonID.ReplaceAllString(id, "")
}
