package model

import "time"

// VerificationResult is the immutable per-fact verdict.
type VerificationResult struct {
	Fact       string             `json:"fact"` // "<type>: <value>"
	Verified   bool               `json:"verified"`
	Confidence float64            `json:"confidence"`
	Sources    []SourceRecord     `json:"sources"`
	Conflicts  []FactConflict     `json:"conflicts"`
	Resolution ConflictResolution `json:"resolution"`
	Timestamp  time.Time          `json:"timestamp"`
	Method     string             `json:"verification_method"`
}

// Verification method names, chosen from conflict and source counts.
const (
	MethodSingleSource       = "single_source_verification"
	MethodConflictResolution = "conflict_resolution"
	MethodMultiSource        = "multi_source_verification"
)

// SessionStatus is the lifecycle state of a verification session
type SessionStatus string

const (
	StatusRunning   SessionStatus = "running"
	StatusCompleted SessionStatus = "completed"
	StatusFailed    SessionStatus = "failed"
)

// VerificationSession tracks one batch of fact verifications.
// Results grow monotonically while running; EndTime is set exactly when the
// session reaches a terminal status.
type VerificationSession struct {
	SessionID         string               `json:"session_id"`
	Query             string               `json:"query"`
	Domain            string               `json:"domain"`
	StartTime         time.Time            `json:"start_time"`
	EndTime           *time.Time           `json:"end_time,omitempty"`
	Results           []VerificationResult `json:"results"`
	OverallConfidence float64              `json:"overall_confidence"`
	Status            SessionStatus        `json:"status"`
}
