package nlp

import (
	"strings"
	"testing"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/model"
)

func newAnalyzer() *Analyzer {
	return New(knowledge.Default())
}

func findEntity(entities []model.Entity, text string, label model.EntityLabel) *model.Entity {
	for i := range entities {
		if entities[i].Text == text && entities[i].Label == label {
			return &entities[i]
		}
	}
	return nil
}

func TestExtractEntities(t *testing.T) {
	a := newAnalyzer()
	text := "Dr. John Smith is a physicist. He works in London."
	entities := a.ExtractEntities(text)

	if len(entities) == 0 {
		t.Fatal("Expected entities")
	}

	person := findEntity(entities, "John Smith", model.EntityPerson)
	if person == nil {
		t.Fatal("Expected PERSON entity 'John Smith'")
	}
	if person.Confidence <= 0 || person.Confidence > 1 {
		t.Errorf("Entity confidence out of range: %f", person.Confidence)
	}
	if person.Description == "" || person.ReferenceURL == "" {
		t.Error("Expected description and reference URL")
	}

	if findEntity(entities, "London", model.EntityLocation) == nil {
		t.Error("Expected LOCATION entity 'London'")
	}
}

func TestExtractEntities_OffsetsValid(t *testing.T) {
	a := newAnalyzer()
	text := "Mr. Alan Turing worked at Bletchley Park in 1940."
	for _, ent := range a.ExtractEntities(text) {
		if ent.Start < 0 || ent.End > len(text) || ent.Start >= ent.End {
			t.Errorf("Entity %q has invalid offsets [%d,%d) in text of length %d",
				ent.Text, ent.Start, ent.End, len(text))
		}
	}
}

func TestExtractEntities_SortedAndDeduped(t *testing.T) {
	a := newAnalyzer()
	text := "London is a city. London is a capital. Research and research and more research."
	entities := a.ExtractEntities(text)

	seen := make(map[string]bool)
	for i, ent := range entities {
		if ent.Confidence < 0 || ent.Confidence > 1 {
			t.Errorf("Confidence out of range: %f", ent.Confidence)
		}
		if i > 0 && entities[i-1].Confidence < ent.Confidence {
			t.Errorf("Entities not sorted by confidence at index %d", i)
		}
		key := strings.ToLower(ent.Text) + "_" + string(ent.Label)
		if seen[key] {
			t.Errorf("Duplicate entity %q/%s survived dedupe", ent.Text, ent.Label)
		}
		seen[key] = true
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	a := newAnalyzer()

	tests := []struct {
		name string
		text string
		want model.Sentiment
	}{
		{"positive", "The product is excellent and amazing and good", model.SentimentPositive},
		{"negative", "This is a terrible and awful broken thing", model.SentimentNegative},
		{"neutral tie", "A standard and typical but flawed and broken design", model.SentimentNeutral},
		{"no sentiment words", "The cat sat on the mat", model.SentimentNeutral},
		{"empty", "", model.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.AnalyzeSentiment(tt.text)
			if result.Sentiment != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, result.Sentiment)
			}
			if result.Confidence < 0.1 || result.Confidence > 1 {
				t.Errorf("Confidence %f outside [0.1,1]", result.Confidence)
			}
			if len(result.Emotions) != 6 {
				t.Errorf("Expected 6 emotion scores, got %d", len(result.Emotions))
			}
		})
	}
}

func TestAnalyzeSentiment_Emotions(t *testing.T) {
	a := newAnalyzer()
	result := a.AnalyzeSentiment("i am happy and excited today")

	want := 2.0 / 6.0
	if diff := result.Emotions["joy"] - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected joy score %f, got %f", want, result.Emotions["joy"])
	}
	if result.Emotions["anger"] != 0 {
		t.Errorf("Expected zero anger, got %f", result.Emotions["anger"])
	}
}

func TestAnalyzeSemantics(t *testing.T) {
	a := newAnalyzer()
	text := "The physics experiment was a success. Einstein discovered Relativity."
	result := a.AnalyzeSemantics(text)

	foundScience := false
	for _, topic := range result.Topics {
		if topic == "science" {
			foundScience = true
		}
	}
	if !foundScience {
		t.Errorf("Expected science topic, got %v", result.Topics)
	}

	foundKeyword := false
	for _, kw := range result.Keywords {
		if kw == "physics" {
			foundKeyword = true
		}
	}
	if !foundKeyword {
		t.Errorf("Expected physics keyword, got %v", result.Keywords)
	}

	if len(result.Concepts) == 0 {
		t.Error("Expected concepts")
	}

	foundRel := false
	for _, rel := range result.Relationships {
		if rel.Subject == "Einstein" && rel.Object == "Relativity" {
			foundRel = true
			if rel.Confidence != 0.7 {
				t.Errorf("Expected relationship confidence 0.7, got %f", rel.Confidence)
			}
		}
	}
	if !foundRel {
		t.Errorf("Expected Einstein->Relativity relationship, got %v", result.Relationships)
	}
}

func TestAnalyzeSemantics_Empty(t *testing.T) {
	a := newAnalyzer()
	result := a.AnalyzeSemantics("")
	if len(result.Topics) != 0 || len(result.Relationships) != 0 {
		t.Errorf("Expected empty analysis, got %+v", result)
	}
}

func TestAnalyzeTextQuality(t *testing.T) {
	a := newAnalyzer()

	simple := a.AnalyzeTextQuality("The cat sat. The cat ran.")
	if simple.ReadabilityScore < 0 || simple.ReadabilityScore > 100 {
		t.Errorf("Readability %f outside [0,100]", simple.ReadabilityScore)
	}
	if simple.Complexity != model.ComplexityBasic {
		t.Errorf("Expected basic complexity for monosyllables, got %s", simple.Complexity)
	}

	dense := a.AnalyzeTextQuality(
		"Epistemological considerations notwithstanding, multidimensional heterogeneous representations necessitate comprehensive interdisciplinary collaboration methodologies.")
	if dense.Complexity != model.ComplexityAdvanced {
		t.Errorf("Expected advanced complexity, got %s", dense.Complexity)
	}
}

func TestAnalyzeTextQuality_Coherence(t *testing.T) {
	a := newAnalyzer()

	repeated := a.AnalyzeTextQuality("the cat sat here. the cat sat here.")
	if repeated.CoherenceScore != 1 {
		t.Errorf("Expected coherence 1 for identical sentences, got %f", repeated.CoherenceScore)
	}

	disjoint := a.AnalyzeTextQuality("cats like fish. quantum mechanics puzzles physicists.")
	if disjoint.CoherenceScore != 0 {
		t.Errorf("Expected coherence 0 for disjoint sentences, got %f", disjoint.CoherenceScore)
	}

	single := a.AnalyzeTextQuality("one sentence only.")
	if single.CoherenceScore != 1 {
		t.Errorf("Expected coherence 1 for a single sentence, got %f", single.CoherenceScore)
	}
}

func TestAnalyzeTextQuality_Bias(t *testing.T) {
	a := newAnalyzer()
	result := a.AnalyzeTextQuality("He is a rich conservative christian")

	want := map[string]bool{"political": true, "gender": true, "religious": true, "economic": true}
	if len(result.BiasIndicators) != len(want) {
		t.Fatalf("Expected %d bias categories, got %v", len(want), result.BiasIndicators)
	}
	for _, cat := range result.BiasIndicators {
		if !want[cat] {
			t.Errorf("Unexpected bias category %q", cat)
		}
	}
}

func TestAnalyzeTextQuality_Empty(t *testing.T) {
	a := newAnalyzer()
	result := a.AnalyzeTextQuality("")

	if result.ReadabilityScore != 0 {
		t.Errorf("Expected zero readability, got %f", result.ReadabilityScore)
	}
	if result.FactDensity != 0 {
		t.Errorf("Expected zero fact density, got %f", result.FactDensity)
	}
	if len(result.BiasIndicators) != 0 {
		t.Errorf("Expected no bias indicators, got %v", result.BiasIndicators)
	}
}
