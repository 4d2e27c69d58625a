package score

import (
	"net/url"
	"strings"
	"time"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
)

// sourceReliability averages a per-source score built from authority-list
// membership, known high-trust hosts and content substance.
func (e *Engine) sourceReliability(sources []model.SourceRecord, domain string) float64 {
	if len(sources) == 0 {
		return 0
	}
	authority := e.base.AuthoritySources(domain)

	var total float64
	for _, src := range sources {
		score := 0.5

		for _, auth := range authority {
			if strings.Contains(src.URL, auth) {
				score += 0.3
				break
			}
		}

		switch {
		case strings.Contains(src.URL, "wikipedia.org"):
			score += 0.2
		case strings.Contains(src.URL, "gov.in"), strings.Contains(src.URL, "gov.uk"):
			score += 0.25
		case strings.Contains(src.URL, "britannica.com"):
			score += 0.2
		case strings.Contains(src.URL, "nature.com"), strings.Contains(src.URL, "science.org"):
			score += 0.25
		}

		if len(src.Content) > 200 {
			score += 0.1
		}
		if len(src.Content) > 500 {
			score += 0.1
		}
		total += score
	}

	mean := total / float64(len(sources))
	if mean > 1 {
		mean = 1
	}
	return mean
}

// contentQuality blends readability, coherence, fact density and the
// knowledge base's lexical quality signal. Trivial content scores zero.
func (e *Engine) contentQuality(content string) float64 {
	if len(content) < 50 {
		return 0
	}
	quality := e.analyzer.AnalyzeTextQuality(content)

	score := quality.ReadabilityScore / 100 * 0.3
	score += quality.CoherenceScore * 0.3
	score += clamp01(quality.FactDensity*10) * 0.2
	score += knowledge.QualityScore(content) * 0.2

	return clamp01(score)
}

// crossSourceAgreement is the mean pairwise token-overlap similarity of
// source contents, neutral at 0.5 with fewer than two sources.
func (e *Engine) crossSourceAgreement(sources []model.SourceRecord) float64 {
	if len(sources) < 2 {
		return 0.5
	}
	var total float64
	pairs := 0
	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			total += contentSimilarity(sources[i].Content, sources[j].Content)
			pairs++
		}
	}
	if pairs == 0 {
		return 0.5
	}
	return total / float64(pairs)
}

// temporalFreshness decays stepwise at 30/90/365-day thresholds, averaged
// over sources that carry a timestamp.
func (e *Engine) temporalFreshness(sources []model.SourceRecord) float64 {
	if len(sources) == 0 {
		return 0
	}
	now := time.Now()

	var total float64
	counted := 0
	for _, src := range sources {
		if src.LastUpdated.IsZero() {
			continue
		}
		days := now.Sub(src.LastUpdated).Hours() / 24

		freshness := 1.0
		if days > 30 {
			freshness -= 0.2
		}
		if days > 90 {
			freshness -= 0.3
		}
		if days > 365 {
			freshness -= 0.4
		}
		if freshness < 0 {
			freshness = 0
		}
		total += freshness
		counted++
	}
	if counted == 0 {
		return 0.5
	}
	return total / float64(counted)
}

// semanticConsistency measures how well the content's keywords, concepts
// and relationships fit the domain profile. Neutral without a profile.
func (e *Engine) semanticConsistency(content, domain string) float64 {
	profile, ok := e.base.Profile(domain)
	if !ok {
		return 0.5
	}
	semantics := e.analyzer.AnalyzeSemantics(content)

	matches := 0
	for _, keyword := range profile.Keywords {
		kw := strings.ToLower(keyword)
		for _, found := range semantics.Keywords {
			if strings.Contains(strings.ToLower(found), kw) {
				matches++
				break
			}
		}
	}

	var score float64
	if len(profile.Keywords) > 0 {
		score += float64(matches) / float64(len(profile.Keywords)) * 0.5
	}
	score += clamp01(float64(len(semantics.Concepts))/10) * 0.3
	score += clamp01(float64(len(semantics.Relationships))/5) * 0.2

	return clamp01(score)
}

// domainExpertise weighs how many sources sit on the domain's authority
// list and how diverse the source hosts are. Neutral without a profile.
func (e *Engine) domainExpertise(domain string, sources []model.SourceRecord) float64 {
	profile, ok := e.base.Profile(domain)
	if !ok {
		return 0.5
	}

	var score float64
	if len(sources) > 0 {
		onList := 0
		for _, src := range sources {
			for _, auth := range profile.AuthoritySources {
				if strings.Contains(src.URL, auth) {
					onList++
					break
				}
			}
		}
		score += float64(onList) / float64(len(sources)) * 0.6
	}

	hosts := make(map[string]bool)
	for _, src := range sources {
		hosts[hostOf(src.URL)] = true
	}
	score += clamp01(float64(len(hosts))/3) * 0.4

	return clamp01(score)
}

func (e *Engine) factDensity(content string) float64 {
	quality := e.analyzer.AnalyzeTextQuality(content)
	return clamp01(quality.FactDensity * 5)
}

// biasIndicators penalizes 0.2 per detected bias category.
func (e *Engine) biasIndicators(content string) float64 {
	quality := e.analyzer.AnalyzeTextQuality(content)
	score := 1 - float64(len(quality.BiasIndicators))*0.2
	if score < 0 {
		return 0
	}
	return score
}

// entityRecognition blends mean entity confidence with the share of
// high-confidence entities. Neutral when nothing was extracted.
func entityRecognition(entities []model.Entity) float64 {
	if len(entities) == 0 {
		return 0.5
	}
	var sum float64
	high := 0
	for _, ent := range entities {
		sum += ent.Confidence
		if ent.Confidence > 0.7 {
			high++
		}
	}
	avg := sum / float64(len(entities))
	return (avg + float64(high)/float64(len(entities))) / 2
}

func relationshipConfidence(relationships []model.Relationship) float64 {
	if len(relationships) == 0 {
		return 0.5
	}
	var sum float64
	strong := 0
	for _, rel := range relationships {
		sum += rel.Confidence
		if rel.Confidence > 0.8 {
			strong++
		}
	}
	avg := sum / float64(len(relationships))
	return (avg + float64(strong)/float64(len(relationships))) / 2
}

// contentSimilarity is the Jaccard ratio of the two texts' vocabularies:
// shared distinct tokens over the combined vocabulary. Repeated tokens
// count once, keeping the ratio within [0,1].
func contentSimilarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0
	}
	set1 := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text1)) {
		set1[w] = true
	}
	set2 := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text2)) {
		set2[w] = true
	}

	union := make(map[string]bool, len(set1)+len(set2))
	intersection := 0
	for w := range set1 {
		if set2[w] {
			intersection++
		}
		union[w] = true
	}
	for w := range set2 {
		union[w] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

func hostOf(rawURL string) string {
	if rawURL == "" {
		return "unknown"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
