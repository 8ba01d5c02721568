package dto

import (
	"pm-studio-be/pkg/annotate"
)

type UpdateDocumentRequest struct {
	Text string `json:"text" validate:"required,max=100000"`
}

type UpdateDocumentResponse struct {
	Revision        int  `json:"revision"`
	CommentsCleared bool `json:"comments_cleared"`
}

type DocumentResponse struct {
	Text     string             `json:"text"`
	Revision int                `json:"revision"`
	Spans    []annotate.Comment `json:"spans"` // ordered, non-overlapping
}
