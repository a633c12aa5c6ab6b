// Package models holds the ambient request/response-adjacent types that sit
// around the core matcher: batch job tracking, cached results, and the
// suggestion index's document shape.
package models

import (
	"time"

	"github.com/address-parser/internal/addrmodel"
)

// Job state constants.
const (
	JobStatePending   = "pending"
	JobStateRunning   = "running"
	JobStateCompleted = "completed"
	JobStateFailed    = "failed"
)

// JobStatus tracks one submitted batch match job, the address domain's
// analog of the teacher's batch job tracking.
type JobStatus struct {
	ID          string     `json:"id"`
	State       string     `json:"state"`
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// IsTerminal reports whether the job has finished, successfully or not.
func (j *JobStatus) IsTerminal() bool {
	return j.State == JobStateCompleted || j.State == JobStateFailed
}

// CachedResult is the value stored in the result cache: a match result
// stamped with the catalog version it was computed against, so a catalog
// reload invalidates stale entries.
type CachedResult struct {
	Result         *addrmodel.MatchResult `json:"result"`
	CatalogVersion string                 `json:"catalog_version"`
	CachedAt       time.Time              `json:"cached_at"`
}

// SuggestionDoc is the document shape indexed into Meilisearch for the
// city/state typeahead endpoint.
type SuggestionDoc struct {
	ID          string `json:"id"`
	City        string `json:"city"`
	State       string `json:"state"`
	DisplayName string `json:"display_name"`
}
