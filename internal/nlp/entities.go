package nlp

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/veracity-tools/veracity/internal/model"
)

// entityRule is one lexical pattern for a label. group selects the capture
// that carries the entity text; 0 takes the whole match.
type entityRule struct {
	pattern *regexp.Regexp
	group   int
}

// entityRules are evaluated per label, in order. The rules favor recall
// over precision; the confidence score and dedupe pass compensate.
var entityRules = []struct {
	label model.EntityLabel
	rules []entityRule
}{
	{model.EntityPerson, []entityRule{
		{regexp.MustCompile(`(?:Mr\.|Ms\.|Dr\.|Prof\.)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1},
		{regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:is|was|are|were|has|have|had)\s+(?:a|an|the)`), 1},
		{regexp.MustCompile(`(?:born|died|created|founded|discovered)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1},
	}},
	{model.EntityOrganization, []entityRule{
		{regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Inc\.|Corp\.|LLC|Ltd\.|Company|Corporation)`), 1},
		{regexp.MustCompile(`(?:company|organization|institution|university|college)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1},
		{regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:University|College|Institute|Academy)`), 1},
	}},
	{model.EntityLocation, []entityRule{
		{regexp.MustCompile(`(?:in|at|from|to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1},
		{regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),\s*[A-Z][a-z]+`), 1},
		{regexp.MustCompile(`(?:capital|city|country|state|province)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1},
	}},
	{model.EntityDate, []entityRule{
		{regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`), 0},
		{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), 0},
		{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), 0},
		{regexp.MustCompile(`\b(?:in|since|during|on)\s+(\d{4})\b`), 1},
	}},
	{model.EntityNumber, []entityRule{
		{regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`), 0},
		{regexp.MustCompile(`\b(?:million|billion|trillion)\b`), 0},
		{regexp.MustCompile(`\b\d+(?:st|nd|rd|th)\b`), 0},
	}},
	{model.EntityTechnology, []entityRule{
		{regexp.MustCompile(`(?i)\b(?:AI|artificial intelligence|machine learning|deep learning|neural network)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:API|application programming interface)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:HTML|CSS|JavaScript|Python|Java|C\+\+|SQL)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:blockchain|cryptocurrency|bitcoin|ethereum)\b`), 0},
	}},
	{model.EntityScience, []entityRule{
		{regexp.MustCompile(`(?i)\b(?:physics|chemistry|biology|mathematics|astronomy|geology)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:theory|hypothesis|experiment|research|study)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:molecule|atom|electron|proton|neutron)\b`), 0},
		{regexp.MustCompile(`(?i)\b(?:DNA|RNA|protein|enzyme|cell)\b`), 0},
	}},
}

var entityDescriptions = map[model.EntityLabel]string{
	model.EntityPerson:       "A person mentioned in the text",
	model.EntityOrganization: "An organization or company",
	model.EntityLocation:     "A geographical location",
	model.EntityDate:         "A specific date or time",
	model.EntityNumber:       "A numerical value",
	model.EntityTechnology:   "A technology or technical term",
	model.EntityScience:      "A scientific concept or term",
}

// ExtractEntities finds typed entities in text. Duplicate (text, label)
// pairs collapse to the highest-confidence instance; the result is sorted
// by confidence, descending.
func (a *Analyzer) ExtractEntities(text string) []model.Entity {
	contextTokens := tokenSet(strings.ToLower(text))

	var entities []model.Entity
	for _, lr := range entityRules {
		for _, rule := range lr.rules {
			for _, m := range rule.pattern.FindAllStringSubmatchIndex(text, -1) {
				s, e := m[0], m[1]
				if rule.group > 0 && m[2*rule.group] >= 0 {
					s, e = m[2*rule.group], m[2*rule.group+1]
				}
				raw := text[s:e]
				entityText := strings.TrimSpace(raw)
				if entityText == "" {
					continue
				}
				entities = append(entities, model.Entity{
					Text:         entityText,
					Label:        lr.label,
					Confidence:   entityConfidence(entityText, contextTokens),
					Start:        m[0],
					End:          m[0] + len(raw),
					ReferenceURL: referenceURL(entityText),
					Description:  entityDescriptions[lr.label],
				})
			}
		}
	}

	entities = dedupeEntities(entities)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Confidence > entities[j].Confidence
	})
	return entities
}

// entityConfidence scores a candidate from span length, capitalization and
// how much of the entity's own vocabulary appears in the surrounding text.
func entityConfidence(entityText string, contextTokens map[string]bool) float64 {
	confidence := 0.5

	if len(entityText) > 3 {
		confidence += 0.1
	}
	if len(entityText) > 10 {
		confidence += 0.1
	}

	runes := []rune(entityText)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		confidence += 0.1
	}

	entityWords := strings.Fields(strings.ToLower(entityText))
	if len(entityWords) > 0 {
		matched := 0
		for _, w := range entityWords {
			if contextTokens[w] {
				matched++
			}
		}
		confidence += float64(matched) / float64(len(entityWords)) * 0.2
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// dedupeEntities keeps, per (lowercased text, label), the entity with the
// highest confidence, preserving first-seen order otherwise.
func dedupeEntities(entities []model.Entity) []model.Entity {
	index := make(map[string]int)
	out := entities[:0]
	for _, ent := range entities {
		key := strings.ToLower(ent.Text) + "_" + string(ent.Label)
		if i, seen := index[key]; seen {
			if ent.Confidence > out[i].Confidence {
				out[i] = ent
			}
			continue
		}
		index[key] = len(out)
		out = append(out, ent)
	}
	return out
}

func referenceURL(entityText string) string {
	slug := strings.ReplaceAll(entityText, " ", "_")
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(slug)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		set[tok] = true
	}
	return set
}
