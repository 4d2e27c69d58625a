// Package score computes confidence scores for verified content: ten
// independent factor estimates blended into an overall value with a risk
// classification, a generated explanation and improvement recommendations.
package score

import (
	"strings"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
)

// overallWeights blends factors into the overall score. Entity recognition
// and relationship confidence are computed and reported but carry no
// weight; the sum is normalized so the result stays in [0,1].
var overallWeights = map[string]float64{
	"source_reliability":     0.20,
	"content_quality":        0.15,
	"cross_source_agreement": 0.20,
	"temporal_freshness":     0.10,
	"semantic_consistency":   0.15,
	"domain_expertise":       0.10,
	"fact_density":           0.05,
	"bias_indicators":        0.05,
}

// Risk thresholds applied to the overall score.
const (
	thresholdLowRisk    = 0.8
	thresholdMediumRisk = 0.6
)

// Engine scores content against its sources and analysis results.
// Stateless, safe for concurrent use.
type Engine struct {
	base     *knowledge.Base
	analyzer *nlp.Analyzer
}

func NewEngine(base *knowledge.Base, analyzer *nlp.Analyzer) *Engine {
	return &Engine{base: base, analyzer: analyzer}
}

// Score computes the full confidence verdict for content fetched from the
// given sources in a domain. Entities and relationships come from a prior
// analyzer pass over the same content.
func (e *Engine) Score(content string, sources []model.SourceRecord, domain string, entities []model.Entity, relationships []model.Relationship) model.ConfidenceScore {
	factors := model.ConfidenceFactors{
		SourceReliability:      e.sourceReliability(sources, domain),
		ContentQuality:         e.contentQuality(content),
		CrossSourceAgreement:   e.crossSourceAgreement(sources),
		TemporalFreshness:      e.temporalFreshness(sources),
		SemanticConsistency:    e.semanticConsistency(content, domain),
		DomainExpertise:        e.domainExpertise(domain, sources),
		FactDensity:            e.factDensity(content),
		BiasIndicators:         e.biasIndicators(content),
		EntityRecognition:      entityRecognition(entities),
		RelationshipConfidence: relationshipConfidence(relationships),
	}

	overall := overallConfidence(factors)

	return model.ConfidenceScore{
		Overall:         overall,
		Factors:         factors,
		Explanation:     explanation(factors),
		Recommendations: recommendations(factors),
		RiskLevel:       riskLevel(overall),
	}
}

func overallConfidence(factors model.ConfidenceFactors) float64 {
	values := map[string]float64{
		"source_reliability":     factors.SourceReliability,
		"content_quality":        factors.ContentQuality,
		"cross_source_agreement": factors.CrossSourceAgreement,
		"temporal_freshness":     factors.TemporalFreshness,
		"semantic_consistency":   factors.SemanticConsistency,
		"domain_expertise":       factors.DomainExpertise,
		"fact_density":           factors.FactDensity,
		"bias_indicators":        factors.BiasIndicators,
	}

	var weightedSum, totalWeight float64
	for name, value := range values {
		weight := overallWeights[name]
		weightedSum += value * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0.5
	}
	return weightedSum / totalWeight
}

func riskLevel(overall float64) model.RiskLevel {
	switch {
	case overall >= thresholdLowRisk:
		return model.RiskLow
	case overall >= thresholdMediumRisk:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// explanation renders threshold-driven sentences for the most telling factors.
func explanation(f model.ConfidenceFactors) string {
	var parts []string

	if f.SourceReliability > 0.8 {
		parts = append(parts, "High-quality sources from authoritative domains")
	} else if f.SourceReliability < 0.4 {
		parts = append(parts, "Limited or unreliable source information")
	}
	if f.CrossSourceAgreement > 0.8 {
		parts = append(parts, "Strong agreement across multiple sources")
	} else if f.CrossSourceAgreement < 0.4 {
		parts = append(parts, "Conflicting information across sources")
	}
	if f.ContentQuality > 0.8 {
		parts = append(parts, "Well-structured and coherent content")
	} else if f.ContentQuality < 0.4 {
		parts = append(parts, "Poor content quality and structure")
	}
	if f.TemporalFreshness > 0.8 {
		parts = append(parts, "Recent and up-to-date information")
	} else if f.TemporalFreshness < 0.4 {
		parts = append(parts, "Outdated or stale information")
	}
	if f.BiasIndicators < 0.6 {
		parts = append(parts, "Potential bias detected in content")
	}

	if len(parts) == 0 {
		parts = append(parts, "Standard confidence level based on available information")
	}
	return strings.Join(parts, ". ") + "."
}

func recommendations(f model.ConfidenceFactors) []string {
	var recs []string

	if f.SourceReliability < 0.6 {
		recs = append(recs, "Seek additional authoritative sources")
	}
	if f.CrossSourceAgreement < 0.6 {
		recs = append(recs, "Verify information across more sources")
	}
	if f.TemporalFreshness < 0.6 {
		recs = append(recs, "Look for more recent information")
	}
	if f.ContentQuality < 0.6 {
		recs = append(recs, "Improve content structure and clarity")
	}
	if f.BiasIndicators < 0.6 {
		recs = append(recs, "Review content for potential bias")
	}
	if f.DomainExpertise < 0.6 {
		recs = append(recs, "Consult domain-specific experts")
	}
	return recs
}
