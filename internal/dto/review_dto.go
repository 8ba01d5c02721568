package dto

import (
	"pm-studio-be/pkg/annotate"
)

type RequestReviewRequest struct {
	// Empty means every reviewer in the roster.
	ReviewerIds []string `json:"reviewer_ids,omitempty" validate:"max=10"`
}

type ReviewerFailureDTO struct {
	ReviewerId string `json:"reviewer_id"`
	Reviewer   string `json:"reviewer"`
	Reason     string `json:"reason"`
}

type RequestReviewResponse struct {
	Comments []annotate.Comment   `json:"comments"`
	Failures []ReviewerFailureDTO `json:"failures,omitempty"`
}

type CommentListResponse struct {
	Comments []annotate.Comment `json:"comments"`
}
