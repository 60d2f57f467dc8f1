// Package models defines the persisted record shapes shared by the store,
// the cognitive engine, and the API layer.
package models

import "time"

// OceanScores holds the five personality dimensions. Raw scores are the
// questionnaire's original scale and are informational only; normalized
// scores in [0, 1] feed the Personality Projector.
type OceanScores struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// CognitiveRecord is one per personality assessment. ReportID is externally
// supplied and unique; CreatedAt is set once at first persistence and never
// moves; PFactor is derived at creation and immutable thereafter. The five
// LastUtterance* fields plus LastUtteranceAt are written atomically as a
// group by the Linguistic Dispatcher's group-write (see internal/store).
type CognitiveRecord struct {
	StoreID       string `json:"store_id"`
	ReportID      string `json:"report_id"`
	CreatedAt     time.Time
	OceanRaw      OceanScores
	OceanNorm     OceanScores
	PFactor       float64

	// InitialPriorityHint is a diagnostic value computed once at creation
	// time from fixed placeholder task scalars, before any real task
	// exists for this agent. It is informational only — it is never
	// consulted by the priority functions in internal/signals.
	InitialPriorityHint float64

	LastUtterance                string
	LastUtteranceRetention        float64
	LastUtteranceConfidenceScore  float64
	LastUtteranceConfidenceBand   string
	LastUtterancePhase            string
	LastUtteranceAt               time.Time
}

// UtteranceUpdate is the group-write payload applied atomically to a
// CognitiveRecord by the Linguistic Dispatcher.
type UtteranceUpdate struct {
	LastUtterance               string
	LastUtteranceRetention       float64
	LastUtteranceConfidenceScore float64
	LastUtteranceConfidenceBand  string
	LastUtterancePhase           string
	LastUtteranceAt              time.Time
}

// TaskRecord is zero-or-more per agent. A TaskRecord whose ReportID does
// not (or no longer) resolve to a CognitiveRecord is still accepted —
// it becomes orphaned, not rejected.
type TaskRecord struct {
	TaskID        string `json:"task_id"`
	ReportID      string `json:"report_id"`
	TaskName      string `json:"task_name"`
	Importance    float64 `json:"importance"`
	RequiredTime  float64 `json:"required_time"`
	AvailableTime float64 `json:"available_time"`
	CreatedAt     time.Time
}
