package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

// resolveConflicts settles a conflict set by trying each strategy in the
// fixed order until one resolves. An empty conflict set resolves
// immediately; exhausting every strategy falls back to manual review.
func (e *Engine) resolveConflicts(factValue string, conflicts []model.FactConflict, sources []model.SourceRecord, domain string) model.ConflictResolution {
	if len(conflicts) == 0 {
		return model.ConflictResolution{
			Resolved:    true,
			Method:      model.ResolveMajorityVote,
			FinalValue:  factValue,
			Confidence:  0.9,
			Explanation: "No conflicts detected",
		}
	}

	for _, method := range model.ResolutionOrder {
		var resolution model.ConflictResolution
		switch method {
		case model.ResolveMajorityVote:
			resolution = resolveByMajorityVote(factValue, sources)
		case model.ResolveAuthorityPreference:
			resolution = resolveByAuthorityPreference(factValue, sources)
		case model.ResolveTemporalRecency:
			resolution = resolveByTemporalRecency(factValue, sources)
		case model.ResolveSemanticAnalysis:
			resolution = e.resolveBySemanticAnalysis(factValue, sources)
		}
		if resolution.Resolved {
			return resolution
		}
	}

	return model.ConflictResolution{
		Resolved:    false,
		Method:      model.ResolveManualReview,
		FinalValue:  factValue,
		Confidence:  0.3,
		Explanation: "Conflicts require manual review",
	}
}

// resolveByMajorityVote counts how many sources state the fact and resolves
// when a strict majority does.
func resolveByMajorityVote(factValue string, sources []model.SourceRecord) model.ConflictResolution {
	count := 0
	for _, src := range sources {
		if extractValue(src.Content, factValue) != "" {
			count++
		}
	}

	if count == 0 {
		return model.ConflictResolution{
			Method:      model.ResolveMajorityVote,
			FinalValue:  factValue,
			Confidence:  0.3,
			Explanation: "No clear majority found",
		}
	}

	confidence := float64(count) / float64(len(sources))
	return model.ConflictResolution{
		Resolved:    confidence > 0.5,
		Method:      model.ResolveMajorityVote,
		FinalValue:  factValue,
		Confidence:  confidence,
		Explanation: fmt.Sprintf("%s found in %d out of %d sources", factValue, count, len(sources)),
	}
}

// resolveByAuthorityPreference trusts the source with the highest authority
// score, at that source's score.
func resolveByAuthorityPreference(factValue string, sources []model.SourceRecord) model.ConflictResolution {
	if len(sources) == 0 {
		return model.ConflictResolution{
			Method:      model.ResolveAuthorityPreference,
			FinalValue:  factValue,
			Confidence:  0.3,
			Explanation: "No authoritative sources available",
		}
	}

	ranked := append([]model.SourceRecord(nil), sources...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AuthorityScore > ranked[j].AuthorityScore
	})

	top := ranked[0]
	value := extractValue(top.Content, factValue)
	final := value
	if final == "" {
		final = factValue
	}
	return model.ConflictResolution{
		Resolved:    value != "",
		Method:      model.ResolveAuthorityPreference,
		FinalValue:  final,
		Confidence:  top.AuthorityScore,
		Explanation: "Resolved using most authoritative source: " + top.Name,
	}
}

// resolveByTemporalRecency trusts the most recently updated source at a
// fixed 0.8 confidence.
func resolveByTemporalRecency(factValue string, sources []model.SourceRecord) model.ConflictResolution {
	if len(sources) == 0 {
		return model.ConflictResolution{
			Method:      model.ResolveTemporalRecency,
			FinalValue:  factValue,
			Confidence:  0.3,
			Explanation: "No sources available",
		}
	}

	ranked := append([]model.SourceRecord(nil), sources...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastUpdated.After(ranked[j].LastUpdated)
	})

	top := ranked[0]
	value := extractValue(top.Content, factValue)
	final := value
	if final == "" {
		final = factValue
	}
	return model.ConflictResolution{
		Resolved:    value != "",
		Method:      model.ResolveTemporalRecency,
		FinalValue:  final,
		Confidence:  0.8,
		Explanation: "Resolved using most recent source: " + top.Name,
	}
}

// resolveBySemanticAnalysis trusts the source whose content carries the
// most concepts and keywords, at a fixed 0.7 confidence.
func (e *Engine) resolveBySemanticAnalysis(factValue string, sources []model.SourceRecord) model.ConflictResolution {
	if len(sources) == 0 {
		return model.ConflictResolution{
			Method:      model.ResolveSemanticAnalysis,
			FinalValue:  factValue,
			Confidence:  0.3,
			Explanation: "No sources available",
		}
	}

	best := sources[0]
	bestScore := -1
	for _, src := range sources {
		semantics := e.analyzer.AnalyzeSemantics(src.Content)
		score := len(semantics.Concepts) + len(semantics.Keywords)
		if score > bestScore {
			bestScore = score
			best = src
		}
	}

	value := extractValue(best.Content, factValue)
	final := value
	if final == "" {
		final = factValue
	}
	return model.ConflictResolution{
		Resolved:    value != "",
		Method:      model.ResolveSemanticAnalysis,
		FinalValue:  final,
		Confidence:  0.7,
		Explanation: "Resolved using semantic analysis of " + best.Name,
	}
}

// extractValue returns the fact value when the content states it, else "".
func extractValue(content, factValue string) string {
	if strings.Contains(strings.ToLower(content), strings.ToLower(factValue)) {
		return factValue
	}
	return ""
}
