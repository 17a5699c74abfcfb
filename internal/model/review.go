package model

import "time"

// ReviewResult is the canonical output of the review pipeline. Every result
// handed to the store has all fields set; Risks and Improvements may be empty
// slices but never nil.
type ReviewResult struct {
	Summary      string   `json:"summary"`
	Risks        []string `json:"risks"`
	Improvements []string `json:"improvements"`
	Model        string   `json:"model"`
	Raw          string   `json:"raw,omitempty"`
}

// StoredReview is a ReviewResult after persistence: the store assigns the id
// and timestamp. Rows are append-only and never updated or deleted.
type StoredReview struct {
	ID           int64     `json:"id"`
	Summary      string    `json:"summary"`
	Risks        []string  `json:"risks"`
	Improvements []string  `json:"improvements"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
}

// Model tags for results that did not come from a live generation call.
const (
	ModelMock           = "mock"
	ModelFallbackPrefix = "fallback:"
)
