package mapper

import (
	"pm-studio-be/internal/dto"
	"pm-studio-be/pkg/phases"
)

// ToPhaseResponse flattens the machine's advancement queries into the wire
// shape the UI polls.
func ToPhaseResponse(m *phases.Machine) dto.PhaseResponse {
	return dto.PhaseResponse{
		Phase:              m.CurrentPhase(),
		Progress:           m.Progress(),
		CanAdvance:         m.CanAdvance(),
		CanManuallyAdvance: m.CanManuallyAdvance(),
		Requirements:       m.AdvancementRequirements(),
		TimeInPhaseSeconds: int64(m.TimeInPhase("").Seconds()),
		ExerciseComplete:   m.IsComplete(),
	}
}
