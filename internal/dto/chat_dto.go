package dto

import (
	"time"
)

type SendChatRequest struct {
	ReviewerId string `json:"reviewer_id" validate:"required,max=64"`
	Message    string `json:"message" validate:"required,max=4000"`
}

type ChatMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SendChatResponse struct {
	ReviewerId string    `json:"reviewer_id"`
	Reply      string    `json:"reply"`
	Available  bool      `json:"available"`
	SentAt     time.Time `json:"sent_at"`
}

type TranscriptResponse struct {
	ReviewerId string           `json:"reviewer_id"`
	Messages   []ChatMessageDTO `json:"messages"`
}
