package evalforge

import (
	"time"
)

// Metadata is an opaque string-keyed JSON object attached to many entities.
type Metadata map[string]any

// Dataset is a named collection of evaluation items.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ItemCount   int       `json:"item_count,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// DatasetItem is one test case within a dataset: an input payload and an
// optional expected payload. Items are created server-side and read-only
// locally.
type DatasetItem struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"dataset_id,omitempty"`
	Input     any       `json:"input"`
	Expected  any       `json:"expected,omitempty"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Scorer is a named server-side evaluator producing a numeric score and a
// pass/fail flag for one output.
type Scorer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Config      Metadata `json:"config,omitempty"`
}

// ScorerSpec selects a scorer for a score call. Config and Weight are
// applied server-side; the client treats them as opaque parameters.
type ScorerSpec struct {
	ScorerID string   `json:"scorer_id"`
	Config   Metadata `json:"config,omitempty"`
	Weight   float64  `json:"weight,omitempty"`
}

// ScorerResult is one scorer's verdict within an evaluation result.
type ScorerResult struct {
	ScorerID        string  `json:"scorer_id"`
	Score           float64 `json:"score"`
	Passed          bool    `json:"passed"`
	Reasoning       string  `json:"reasoning,omitempty"`
	ExecutionTimeMS int64   `json:"execution_time_ms,omitempty"`
}

// EvaluationResult is the server's verdict on one (item, output) pair.
// OverallPassed is authoritative; the client never recomputes it.
type EvaluationResult struct {
	ID              string         `json:"id,omitempty"`
	ItemID          string         `json:"item_id"`
	Output          string         `json:"agent_output,omitempty"`
	Scores          []ScorerResult `json:"scores"`
	OverallScore    float64        `json:"overall_score"`
	OverallPassed   bool           `json:"overall_passed"`
	ExecutionTimeMS int64          `json:"execution_time_ms,omitempty"`
	CreatedAt       time.Time      `json:"created_at,omitempty"`
}

// Trace is one recorded execution submitted for ingestion.
type Trace struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Input      any       `json:"input,omitempty"`
	Output     any       `json:"output,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
}
