package dto

import (
	"time"
)

type StartSessionRequest struct {
	ParticipantName  string `json:"participant_name" validate:"required,min=2,max=80"`
	ParticipantEmail string `json:"participant_email,omitempty" validate:"omitempty,email"`
}

type StartSessionResponse struct {
	SessionId string        `json:"session_id"`
	Token     string        `json:"token"`
	Document  string        `json:"document"`
	Phase     PhaseResponse `json:"phase"`
}

type SessionSnapshotResponse struct {
	SessionId    string        `json:"session_id"`
	Participant  string        `json:"participant"`
	Document     string        `json:"document"`
	Revision     int           `json:"revision"`
	CommentCount int           `json:"comment_count"`
	Phase        PhaseResponse `json:"phase"`
	StartedAt    time.Time     `json:"started_at"`
}
