package nlp

import (
	"regexp"
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	vowelGroup    = regexp.MustCompile(`[aeiouy]+`)
)

var factIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:is|are|was|were|has|have|had|will|would|can|could|should|must)\b`),
	regexp.MustCompile(`(?i)\b(?:according to|based on|research shows|studies indicate|data reveals)\b`),
	regexp.MustCompile(`(?i)\b(?:percent|%|million|billion|trillion|thousand)\b`),
	regexp.MustCompile(`(?i)\b(?:in|on|at|by|for|with|from|to|of)\b`),
}

// biasIndicators map pattern rules to bias categories. A category is
// reported once no matter how many of its patterns match.
var biasIndicators = []struct {
	pattern  *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)\b(?:liberal|conservative|left-wing|right-wing|progressive|traditional)\b`), "political"},
	{regexp.MustCompile(`(?i)\b(?:democrat|republican|socialist|capitalist|communist|fascist)\b`), "political"},
	{regexp.MustCompile(`(?i)\b(?:he|she|him|her|his|hers)\b`), "gender"},
	{regexp.MustCompile(`(?i)\b(?:man|woman|male|female|guy|girl|boy|lady|gentleman)\b`), "gender"},
	{regexp.MustCompile(`(?i)\b(?:white|black|asian|hispanic|latino|african|european|american)\b`), "racial"},
	{regexp.MustCompile(`(?i)\b(?:caucasian|african-american|asian-american|native american)\b`), "racial"},
	{regexp.MustCompile(`(?i)\b(?:christian|muslim|jewish|hindu|buddhist|atheist|agnostic)\b`), "religious"},
	{regexp.MustCompile(`(?i)\b(?:church|mosque|synagogue|temple|cathedral)\b`), "religious"},
	{regexp.MustCompile(`(?i)\b(?:rich|poor|wealthy|poverty|millionaire|billionaire)\b`), "economic"},
	{regexp.MustCompile(`(?i)\b(?:elite|privileged|disadvantaged|underprivileged)\b`), "economic"},
}

// AnalyzeTextQuality computes readability, coherence, fact density and bias
// indicators for a text. Empty input yields a zeroed, clamped result.
func (a *Analyzer) AnalyzeTextQuality(text string) model.TextQuality {
	sentences := splitSentences(text)
	words := strings.Fields(text)

	quality := model.TextQuality{
		Complexity:     model.ComplexityAdvanced,
		CoherenceScore: coherence(sentences),
		FactDensity:    factDensity(text, len(words)),
		BiasIndicators: detectBias(text),
	}
	if len(sentences) == 0 || len(words) == 0 {
		return quality
	}

	avgWordsPerSentence := float64(len(words)) / float64(len(sentences))
	avgSyllablesPerWord := float64(countSyllables(words)) / float64(len(words))
	readability := 206.835 - 1.015*avgWordsPerSentence - 84.6*avgSyllablesPerWord
	if readability < 0 {
		readability = 0
	}
	if readability > 100 {
		readability = 100
	}
	quality.ReadabilityScore = readability

	switch {
	case readability >= 80:
		quality.Complexity = model.ComplexityBasic
	case readability >= 60:
		quality.Complexity = model.ComplexityIntermediate
	}
	return quality
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// countSyllables estimates syllables as vowel groups, minimum one per word.
func countSyllables(words []string) int {
	total := 0
	for _, word := range words {
		n := len(vowelGroup.FindAllString(strings.ToLower(word), -1))
		if n == 0 {
			n = 1
		}
		total += n
	}
	return total
}

// coherence is the mean token-overlap ratio over adjacent sentence pairs.
// Fewer than two sentences count as fully coherent.
func coherence(sentences []string) float64 {
	if len(sentences) < 2 {
		return 1
	}
	var score float64
	for i := 1; i < len(sentences); i++ {
		prev := strings.Fields(strings.ToLower(sentences[i-1]))
		curr := strings.Fields(strings.ToLower(sentences[i]))
		currSet := make(map[string]bool, len(curr))
		for _, w := range curr {
			currSet[w] = true
		}
		overlap := 0
		for _, w := range prev {
			if currSet[w] {
				overlap++
			}
		}
		longest := len(prev)
		if len(curr) > longest {
			longest = len(curr)
		}
		if longest > 0 {
			score += float64(overlap) / float64(longest)
		}
	}
	return score / float64(len(sentences)-1)
}

func factDensity(text string, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	count := 0
	for _, p := range factIndicators {
		count += len(p.FindAllString(text, -1))
	}
	return float64(count) / float64(wordCount)
}

// detectBias returns the distinct bias categories whose patterns match,
// in category order.
func detectBias(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, bi := range biasIndicators {
		if seen[bi.category] {
			continue
		}
		if bi.pattern.MatchString(text) {
			seen[bi.category] = true
			out = append(out, bi.category)
		}
	}
	return out
}
