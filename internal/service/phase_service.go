package service

import (
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/mapper"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/events"

	"github.com/gofiber/fiber/v2"
)

type IPhaseService interface {
	GetPhase(sessionId string) (*dto.PhaseResponse, error)
	CompleteAction(sessionId string, req *dto.CompleteActionRequest) (*dto.PhaseResponse, error)
	Advance(sessionId string) (*dto.AdvancePhaseResponse, error)
}

type phaseService struct {
	sessions  *memory.SessionRepository
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewPhaseService(sessions *memory.SessionRepository, publisher IEventPublisher, log logger.ILogger) IPhaseService {
	return &phaseService{
		sessions:  sessions,
		publisher: publisher,
		logger:    log,
	}
}

func (ps *phaseService) GetPhase(sessionId string) (*dto.PhaseResponse, error) {
	sess, err := getSession(ps.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	resp := mapper.ToPhaseResponse(sess.Phases)
	return &resp, nil
}

// CompleteAction accepts any action id. Ids outside the current phase's
// requirement list are recorded but change nothing, which lets the frontend
// report activity without a round of validation errors.
func (ps *phaseService) CompleteAction(sessionId string, req *dto.CompleteActionRequest) (*dto.PhaseResponse, error) {
	sess, err := getSession(ps.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	applyAction(sess, req.ActionId, ps.publisher)
	ps.sessions.Touch(sess.ID)

	resp := mapper.ToPhaseResponse(sess.Phases)
	return &resp, nil
}

// Advance is the manual path. It only works in phases that allow manual
// advancement and only once the phase's requirements are met.
func (ps *phaseService) Advance(sessionId string) (*dto.AdvancePhaseResponse, error) {
	sess, err := getSession(ps.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if !sess.Phases.CanManuallyAdvance() {
		return nil, serverutils.NewApiError(fiber.StatusConflict, sess.Phases.AdvancementRequirements())
	}

	before := sess.Phases.CurrentPhase().Id
	wasComplete := sess.Phases.IsComplete()
	advanced := sess.Phases.ForceAdvance()
	if advanced {
		after := sess.Phases.CurrentPhase().Id
		ps.publisher.Publish(events.NewPhaseAdvanced(sess.ID, before, after))
		ps.logger.Info("Phase", "Manual advancement", map[string]interface{}{
			"session_id": sess.ID,
			"from":       before,
			"to":         after,
		})
	}
	if !wasComplete && sess.Phases.IsComplete() {
		ps.publisher.Publish(events.NewExerciseCompleted(sess.ID, sess.ParticipantName, sess.ParticipantEmail))
	}
	ps.sessions.Touch(sess.ID)

	return &dto.AdvancePhaseResponse{
		Advanced: advanced,
		Phase:    mapper.ToPhaseResponse(sess.Phases),
	}, nil
}
