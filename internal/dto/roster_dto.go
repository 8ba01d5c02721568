package dto

import (
	"pm-studio-be/pkg/store"
)

type RosterResponse struct {
	Reviewers []store.ReviewerPersona `json:"reviewers"`
}

type ShareDocumentResponse struct {
	Shared        *store.SharedDocument  `json:"shared,omitempty"`
	AlreadyShared bool                   `json:"already_shared"`
	All           []store.SharedDocument `json:"all"`
}

type SharedDocumentsResponse struct {
	Documents []store.SharedDocument `json:"documents"`
}
