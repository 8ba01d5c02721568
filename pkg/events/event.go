package events

import "time"

// Event codes emitted by the exercise core.
const (
	TypeReviewCompleted   = "REVIEW_COMPLETED"
	TypePhaseAdvanced     = "PHASE_ADVANCED"
	TypeExerciseCompleted = "EXERCISE_COMPLETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PHASE_ADVANCED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic Event implementation used across the system.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewReviewCompleted is emitted after a review pass finishes, whether or not
// every reviewer succeeded.
func NewReviewCompleted(sessionId string, comments, failures int) Event {
	return BaseEvent{
		Type: TypeReviewCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"comments":   comments,
			"failures":   failures,
		},
		OccurredAt: time.Now(),
	}
}

// NewPhaseAdvanced is emitted when the session moves to a new phase.
func NewPhaseAdvanced(sessionId, fromPhase, toPhase string) Event {
	return BaseEvent{
		Type: TypePhaseAdvanced,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"from":       fromPhase,
			"to":         toPhase,
		},
		OccurredAt: time.Now(),
	}
}

// NewExerciseCompleted is emitted when the terminal phase's required actions
// are done.
func NewExerciseCompleted(sessionId, participant, email string) Event {
	return BaseEvent{
		Type: TypeExerciseCompleted,
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"participant": participant,
			"email":       email,
		},
		OccurredAt: time.Now(),
	}
}
