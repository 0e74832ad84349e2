package webapi

import (
	"github.com/promptlens/promptlens/internal/models"
)

// ListQuery filters dataset and experiment listings.
// Search matches name or description case-insensitively; Status "" or "all"
// matches every status.
type ListQuery struct {
	Search string
	Status string
}

// EntriesPage is one page of a dataset's entries.
type EntriesPage struct {
	DatasetID string                `json:"datasetId"`
	Offset    int                   `json:"offset"`
	Limit     int                   `json:"limit"`
	Total     int                   `json:"total"`
	Entries   []models.DatasetEntry `json:"entries"`
}

// ConfidenceRequest selects the confidence function for an evaluation.
type ConfidenceRequest struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	Actual     []string           `json:"actual"`
	Predicted  []string           `json:"predicted"`
	Classes    []string           `json:"classes,omitempty"`
	Confidence *ConfidenceRequest `json:"confidence,omitempty"`
}

// EvaluateResponse carries the metrics in the dashboard shape plus a
// plain-language reading of them.
type EvaluateResponse struct {
	Metrics        models.ClassificationMetrics `json:"metrics"`
	Interpretation string                       `json:"interpretation"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
