package dto

import (
	"github.com/devsync/ai-engine/internal/model"
	"github.com/devsync/ai-engine/internal/review"
)

type ReviewRequest struct {
	Diff string `json:"diff"`
}

type ReviewResponse struct {
	Summary      string   `json:"summary"`
	Risks        []string `json:"risks"`
	Improvements []string `json:"improvements"`
	Raw          string   `json:"raw,omitempty"`
	Model        string   `json:"model"`
	Error        string   `json:"error,omitempty"`
	Type         string   `json:"type"`
}

func ToReviewResponse(result review.Result) ReviewResponse {
	return ReviewResponse{
		Summary:      result.Summary,
		Risks:        result.Risks,
		Improvements: result.Improvements,
		Raw:          result.Raw,
		Model:        result.Model,
		Error:        result.Diagnostic,
		Type:         "code-review",
	}
}

type ListReviewsResponse struct {
	Items []model.StoredReview `json:"items"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	DBConnected bool   `json:"db_connected"`
	Model       string `json:"model"`
	MockMode    bool   `json:"mock_mode"`
}
