package model

// ConflictType categorizes the nature of a disagreement between sources
type ConflictType string

const (
	ConflictTemporal    ConflictType = "temporal"    // Some sources are outdated relative to others
	ConflictSemantic    ConflictType = "semantic"    // Sources frame the fact in incompatible ways
	ConflictNumerical   ConflictType = "numerical"   // Reported numbers diverge significantly
	ConflictCategorical ConflictType = "categorical" // One source affirms what another negates
)

// ConflictSeverity indicates how much a conflict should discount confidence
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// Penalty returns the confidence penalty applied per conflict of this severity.
// Tunable policy, not derived truth.
func (s ConflictSeverity) Penalty() float64 {
	switch s {
	case SeverityHigh:
		return 0.2
	case SeverityMedium:
		return 0.1
	case SeverityLow:
		return 0.05
	default:
		return 0
	}
}

// FactConflict is a detected disagreement between two or more sources about a fact.
// Conflicts are derived data: they are only ever produced by the detectors.
type FactConflict struct {
	Fact               string           `json:"fact"`
	ConflictingSources []string         `json:"conflicting_sources"` // At least two source names
	Type               ConflictType     `json:"conflict_type"`
	Severity           ConflictSeverity `json:"severity"`
	Description        string           `json:"description"`
}

// ResolutionMethod identifies the strategy that settled (or failed to settle) a conflict set
type ResolutionMethod string

const (
	ResolveMajorityVote        ResolutionMethod = "majority_vote"
	ResolveAuthorityPreference ResolutionMethod = "authority_preference"
	ResolveTemporalRecency     ResolutionMethod = "temporal_recency"
	ResolveSemanticAnalysis    ResolutionMethod = "semantic_analysis"
	ResolveManualReview        ResolutionMethod = "manual_review"
)

// ResolutionOrder is the fixed order in which strategies are attempted.
// The first strategy that reports resolved wins; manual_review is the fallback.
var ResolutionOrder = []ResolutionMethod{
	ResolveMajorityVote,
	ResolveAuthorityPreference,
	ResolveTemporalRecency,
	ResolveSemanticAnalysis,
}

// ConflictResolution records how a fact's conflict set was settled.
type ConflictResolution struct {
	Resolved    bool             `json:"resolved"`
	Method      ResolutionMethod `json:"resolution_method"`
	FinalValue  string           `json:"final_value"`
	Confidence  float64          `json:"confidence"`
	Explanation string           `json:"explanation"`
}
