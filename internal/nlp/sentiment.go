package nlp

import (
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

var positiveWords = wordSet(
	"excellent", "amazing", "outstanding", "brilliant", "fantastic", "wonderful",
	"great", "good", "best", "superior", "innovative", "revolutionary",
	"breakthrough", "successful", "effective", "efficient", "powerful", "advanced",
	"leading", "pioneering", "cutting-edge", "state-of-the-art", "world-class",
	"top-tier", "premium", "quality",
)

var negativeWords = wordSet(
	"terrible", "awful", "horrible", "disappointing", "poor", "bad", "worst",
	"inferior", "failed", "unsuccessful", "ineffective", "inefficient", "weak",
	"outdated", "obsolete", "problematic", "controversial", "disputed",
	"limited", "restricted", "flawed", "defective", "broken", "malfunctioning",
	"unreliable", "unstable",
)

var neutralWords = wordSet(
	"average", "standard", "typical", "normal", "regular", "common", "usual",
	"ordinary", "conventional", "traditional", "established", "accepted",
	"recognized", "known", "familiar", "basic",
)

// emotionWords maps each tracked emotion to its indicator vocabulary.
var emotionWords = []struct {
	name  string
	words map[string]bool
}{
	{"joy", wordSet("happy", "joyful", "excited", "thrilled", "delighted", "pleased", "satisfied", "content")},
	{"anger", wordSet("angry", "furious", "outraged", "irritated", "annoyed", "frustrated", "mad", "upset")},
	{"fear", wordSet("afraid", "scared", "terrified", "worried", "anxious", "concerned", "nervous", "frightened")},
	{"sadness", wordSet("sad", "depressed", "melancholy", "grief", "sorrow", "disappointed", "disheartened", "dejected")},
	{"surprise", wordSet("surprised", "shocked", "amazed", "astonished", "stunned", "bewildered", "confused", "puzzled")},
	{"disgust", wordSet("disgusted", "revolted", "repulsed", "sickened", "nauseated", "offended", "appalled", "horrified")},
}

// AnalyzeSentiment scores text polarity against fixed vocabularies.
// The label is the majority category; confidence is the winning category's
// share of sentiment words, floored at 0.1. Each emotion score is its word
// count divided by the total token count.
func (a *Analyzer) AnalyzeSentiment(text string) model.SentimentAnalysis {
	tokens := strings.Fields(strings.ToLower(text))

	var positive, negative, neutral int
	for _, tok := range tokens {
		switch {
		case positiveWords[tok]:
			positive++
		case negativeWords[tok]:
			negative++
		case neutralWords[tok]:
			neutral++
		}
	}

	emotions := make(map[string]float64, len(emotionWords))
	for _, em := range emotionWords {
		count := 0
		for _, tok := range tokens {
			if em.words[tok] {
				count++
			}
		}
		if len(tokens) > 0 {
			emotions[em.name] = float64(count) / float64(len(tokens))
		} else {
			emotions[em.name] = 0
		}
	}

	total := positive + negative + neutral
	sentiment := model.SentimentNeutral
	confidence := 0.0
	switch {
	case total == 0:
		// No sentiment words at all; neutral at the floor.
	case positive > negative && positive > neutral:
		sentiment = model.SentimentPositive
		confidence = float64(positive) / float64(total)
	case negative > positive && negative > neutral:
		sentiment = model.SentimentNegative
		confidence = float64(negative) / float64(total)
	default:
		confidence = float64(neutral) / float64(total)
	}
	if confidence < 0.1 {
		confidence = 0.1
	}

	return model.SentimentAnalysis{
		Sentiment:  sentiment,
		Confidence: confidence,
		Emotions:   emotions,
	}
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
