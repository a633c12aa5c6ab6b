package responses

import "github.com/address-parser/app/models"

// ParseAddressResponse is the body of POST /v1/addresses/parse.
type ParseAddressResponse struct {
	Result           MatchResponse `json:"result"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	CacheHit         bool          `json:"cache_hit"`
}

// BatchParseResponse is the body returned immediately after submitting a
// batch job.
type BatchParseResponse struct {
	JobID          string `json:"job_id"`
	TotalAddresses int    `json:"total_addresses"`
}

// JobStatusResponse reports a batch job's progress.
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`
	State     string  `json:"state"`
	Progress  float64 `json:"progress"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
}

// ErrorResponse is the uniform error body for 4xx/5xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuggestResponse is the body of GET /v1/suggest.
type SuggestResponse struct {
	Suggestions []models.SuggestionDoc `json:"suggestions"`
}

// HealthCheckResponse is the body of GET /health.
type HealthCheckResponse struct {
	Status         string `json:"status"`
	Uptime         string `json:"uptime"`
	CatalogVersion string `json:"catalog_version"`
	CatalogSize    int    `json:"catalog_size"`
}
