package dto

import (
	"pm-studio-be/internal/pkg/logger"
)

type FacilitatorLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type FacilitatorLoginResponse struct {
	Token string `json:"token"`
}

type LogListResponse struct {
	Entries []logger.LogEntry `json:"entries"`
}
