package dto

import (
	"pm-studio-be/pkg/phases"
)

type PhaseResponse struct {
	Phase              phases.Phase    `json:"phase"`
	Progress           phases.Progress `json:"progress"`
	CanAdvance         bool            `json:"can_advance"`
	CanManuallyAdvance bool            `json:"can_manually_advance"`
	Requirements       string          `json:"requirements"`
	TimeInPhaseSeconds int64           `json:"time_in_phase_seconds"`
	ExerciseComplete   bool            `json:"exercise_complete"`
}

type CompleteActionRequest struct {
	ActionId string `json:"action_id" validate:"required,max=64"`
}

type AdvancePhaseResponse struct {
	Advanced bool          `json:"advanced"`
	Phase    PhaseResponse `json:"phase"`
}
