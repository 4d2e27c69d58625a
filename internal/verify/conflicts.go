package verify

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/veracity-tools/veracity/internal/model"
)

var negationWords = []string{"not", "no", "never", "none", "neither", "nor"}

var numberPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)

const outdatedAfterDays = 365

// detectConflicts runs all detectors over the source set: pairwise
// categorical and numerical checks, a temporal staleness check, and a
// pairwise sentiment check.
func (e *Engine) detectConflicts(factType, factValue string, sources []model.SourceRecord) []model.FactConflict {
	var conflicts []model.FactConflict

	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			if conflict := compareSources(sources[i], sources[j], factValue); conflict != nil {
				conflicts = append(conflicts, *conflict)
			}
		}
	}

	conflicts = append(conflicts, detectTemporalConflicts(factType, sources)...)
	conflicts = append(conflicts, e.detectSemanticConflicts(factValue, sources)...)

	return conflicts
}

// compareSources reports the strongest pairwise conflict between two
// sources, categorical before numerical, or nil.
func compareSources(source1, source2 model.SourceRecord, factValue string) *model.FactConflict {
	content1 := strings.ToLower(source1.Content)
	content2 := strings.ToLower(source2.Content)

	if hasDirectContradiction(content1, content2, strings.ToLower(factValue)) {
		return &model.FactConflict{
			Fact:               factValue,
			ConflictingSources: []string{source1.Name, source2.Name},
			Type:               model.ConflictCategorical,
			Severity:           model.SeverityHigh,
			Description:        "Direct contradiction between " + source1.Name + " and " + source2.Name,
		}
	}

	if hasNumericalConflict(content1, content2) {
		return &model.FactConflict{
			Fact:               factValue,
			ConflictingSources: []string{source1.Name, source2.Name},
			Type:               model.ConflictNumerical,
			Severity:           model.SeverityMedium,
			Description:        "Numerical discrepancy between " + source1.Name + " and " + source2.Name,
		}
	}

	return nil
}

// hasDirectContradiction holds when one source negates while the other
// states the fact. Inputs are lowercased.
func hasDirectContradiction(content1, content2, factValue string) bool {
	for _, negation := range negationWords {
		if strings.Contains(content1, negation) && strings.Contains(content2, factValue) {
			return true
		}
		if strings.Contains(content2, negation) && strings.Contains(content1, factValue) {
			return true
		}
	}
	return false
}

// hasNumericalConflict holds when any number in one source differs from any
// number in the other by more than half the larger value.
func hasNumericalConflict(content1, content2 string) bool {
	numbers1 := parseNumbers(content1)
	numbers2 := parseNumbers(content2)

	for _, val1 := range numbers1 {
		for _, val2 := range numbers2 {
			if val1 <= 0 || val2 <= 0 {
				continue
			}
			max := val1
			if val2 > max {
				max = val2
			}
			diff := val1 - val2
			if diff < 0 {
				diff = -diff
			}
			if diff/max > 0.5 {
				return true
			}
		}
	}
	return false
}

func parseNumbers(content string) []float64 {
	var values []float64
	for _, match := range numberPattern.FindAllString(content, -1) {
		clean := strings.ReplaceAll(match, ",", "")
		if v, err := strconv.ParseFloat(clean, 64); err == nil {
			values = append(values, v)
		}
	}
	return values
}

func daysSince(t time.Time) float64 {
	return time.Since(t).Hours() / 24
}

// detectTemporalConflicts flags sources older than a year when fresher
// sources also answered. All stale sources share one conflict entry, with
// the freshest counterpart named so the conflict always lists both sides.
func detectTemporalConflicts(factType string, sources []model.SourceRecord) []model.FactConflict {
	var outdated []string
	var freshest model.SourceRecord
	for _, src := range sources {
		if !src.LastUpdated.IsZero() && daysSince(src.LastUpdated) > outdatedAfterDays {
			outdated = append(outdated, src.Name)
			continue
		}
		if freshest.Name == "" || src.LastUpdated.After(freshest.LastUpdated) {
			freshest = src
		}
	}

	if len(outdated) == 0 || len(outdated) >= len(sources) {
		return nil
	}
	return []model.FactConflict{{
		Fact:               factType,
		ConflictingSources: append(outdated, freshest.Name),
		Type:               model.ConflictTemporal,
		Severity:           model.SeverityMedium,
		Description:        "Outdated information detected in some sources",
	}}
}

// detectSemanticConflicts flags source pairs whose sentiment labels differ
// with a confidence gap above 0.3.
func (e *Engine) detectSemanticConflicts(factValue string, sources []model.SourceRecord) []model.FactConflict {
	var conflicts []model.FactConflict

	sentiments := make([]model.SentimentAnalysis, len(sources))
	for i, src := range sources {
		sentiments[i] = e.analyzer.AnalyzeSentiment(src.Content)
	}

	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			gap := sentiments[i].Confidence - sentiments[j].Confidence
			if gap < 0 {
				gap = -gap
			}
			if sentiments[i].Sentiment != sentiments[j].Sentiment && gap > 0.3 {
				conflicts = append(conflicts, model.FactConflict{
					Fact:               factValue,
					ConflictingSources: []string{sources[i].Name, sources[j].Name},
					Type:               model.ConflictSemantic,
					Severity:           model.SeverityLow,
					Description:        "Different sentiment analysis results",
				})
			}
		}
	}
	return conflicts
}
