package nlp

import (
	"regexp"
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

var conceptPatterns = []struct {
	pattern *regexp.Regexp
	group   int
}{
	{regexp.MustCompile(`(?i)\b(?:the|a|an)\s+([a-z]+(?:\s+[a-z]+)*)\b`), 1},
	{regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`), 0},
}

var relationshipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:is|was|are|were)\s+(?:a|an|the)?\s*([a-z]+(?:\s+[a-z]+)*)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:founded|created|discovered|invented)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:from|in|at)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

// predicateOrder is probed in order against the matched span; the first
// predicate contained in it wins.
var predicateOrder = []string{
	"is", "was", "are", "were",
	"founded", "created", "discovered", "invented",
	"from", "in", "at",
}

const relationshipConfidence = 0.7

// AnalyzeSemantics surfaces topics and keywords by intersecting the text
// with every domain's keyword list, then extracts concepts and
// subject-predicate-object relationships from lexical templates.
func (a *Analyzer) AnalyzeSemantics(text string) model.SemanticAnalysis {
	textLower := strings.ToLower(text)

	var topics, keywords []string
	seenKeyword := make(map[string]bool)
	for _, domain := range a.base.Domains() {
		profile, ok := a.base.Profile(domain)
		if !ok {
			continue
		}
		matched := false
		for _, kw := range profile.Keywords {
			if strings.Contains(textLower, strings.ToLower(kw)) {
				matched = true
				if !seenKeyword[kw] {
					seenKeyword[kw] = true
					keywords = append(keywords, kw)
				}
			}
		}
		if matched {
			topics = append(topics, domain)
		}
	}

	var concepts []string
	seenConcept := make(map[string]bool)
	for _, cp := range conceptPatterns {
		for _, m := range cp.pattern.FindAllStringSubmatch(text, -1) {
			concept := m[cp.group]
			if len(concept) > 3 && !seenConcept[concept] {
				seenConcept[concept] = true
				concepts = append(concepts, concept)
			}
		}
	}

	var relationships []model.Relationship
	for _, rp := range relationshipPatterns {
		for _, m := range rp.FindAllStringSubmatch(text, -1) {
			relationships = append(relationships, model.Relationship{
				Subject:    m[1],
				Predicate:  extractPredicate(m[0]),
				Object:     m[2],
				Confidence: relationshipConfidence,
			})
		}
	}

	return model.SemanticAnalysis{
		Topics:        topics,
		Keywords:      keywords,
		Concepts:      concepts,
		Relationships: relationships,
	}
}

func extractPredicate(span string) string {
	lower := strings.ToLower(span)
	for _, p := range predicateOrder {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return "related to"
}
