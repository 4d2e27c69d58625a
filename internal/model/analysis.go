package model

// EntityLabel is the fixed set of entity types the analyzer recognizes
type EntityLabel string

const (
	EntityPerson       EntityLabel = "PERSON"
	EntityOrganization EntityLabel = "ORGANIZATION"
	EntityLocation     EntityLabel = "LOCATION"
	EntityDate         EntityLabel = "DATE"
	EntityNumber       EntityLabel = "NUMBER"
	EntityTechnology   EntityLabel = "TECHNOLOGY"
	EntityScience      EntityLabel = "SCIENCE"
)

// Entity is a span of text recognized as a typed entity.
// Start/End are byte offsets into the analyzed text.
type Entity struct {
	Text         string      `json:"text"`
	Label        EntityLabel `json:"label"`
	Confidence   float64     `json:"confidence"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	ReferenceURL string      `json:"reference_url,omitempty"`
	Description  string      `json:"description,omitempty"`
}

// Relationship is a directed (subject, predicate, object) triple extracted from text
type Relationship struct {
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is the coarse polarity of a text
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentAnalysis is the polarity and emotion profile of a text.
// Confidence is the winning category's share of sentiment words, floored at 0.1.
type SentimentAnalysis struct {
	Sentiment  Sentiment          `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions"` // Emotion name -> token share
}

// SemanticAnalysis carries topics, keywords, concepts and relationships found in a text
type SemanticAnalysis struct {
	Topics        []string       `json:"topics"`   // Matched domain names
	Keywords      []string       `json:"keywords"` // Matched domain keywords
	Concepts      []string       `json:"concepts"`
	Relationships []Relationship `json:"relationships"`
}

// ComplexityLevel buckets readability into three levels
type ComplexityLevel string

const (
	ComplexityBasic        ComplexityLevel = "basic"
	ComplexityIntermediate ComplexityLevel = "intermediate"
	ComplexityAdvanced     ComplexityLevel = "advanced"
)

// TextQuality is the readability/coherence/bias profile of a text
type TextQuality struct {
	ReadabilityScore float64         `json:"readability_score"` // Flesch-Kincaid style, clamped to [0,100]
	Complexity       ComplexityLevel `json:"complexity_level"`
	CoherenceScore   float64         `json:"coherence_score"` // Mean adjacent-sentence token overlap
	FactDensity      float64         `json:"fact_density"`    // Fact-indicator matches per word
	BiasIndicators   []string        `json:"bias_indicators"` // Distinct bias categories that matched
}

// ConfidenceFactors are the ten independent [0,1] sub-scores behind an overall confidence
type ConfidenceFactors struct {
	SourceReliability      float64 `json:"source_reliability"`
	ContentQuality         float64 `json:"content_quality"`
	CrossSourceAgreement   float64 `json:"cross_source_agreement"`
	TemporalFreshness      float64 `json:"temporal_freshness"`
	SemanticConsistency    float64 `json:"semantic_consistency"`
	DomainExpertise        float64 `json:"domain_expertise"`
	FactDensity            float64 `json:"fact_density"`
	BiasIndicators         float64 `json:"bias_indicators"`
	EntityRecognition      float64 `json:"entity_recognition"`
	RelationshipConfidence float64 `json:"relationship_confidence"`
}

// RiskLevel classifies an overall confidence against fixed thresholds
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"    // overall >= 0.8
	RiskMedium RiskLevel = "medium" // overall >= 0.6
	RiskHigh   RiskLevel = "high"
)

// ConfidenceScore is the rolled-up confidence verdict for a block of content
type ConfidenceScore struct {
	Overall         float64           `json:"overall"`
	Factors         ConfidenceFactors `json:"factors"`
	Explanation     string            `json:"explanation"`
	Recommendations []string          `json:"recommendations"`
	RiskLevel       RiskLevel         `json:"risk_level"`
}
