package service

import (
	"time"

	"pm-studio-be/internal/constant"
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/mapper"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/annotate"
	"pm-studio-be/pkg/events"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/phases"
	"pm-studio-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionService interface {
	Start(req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	Snapshot(sessionId string) (*dto.SessionSnapshotResponse, error)
	UpdateDocument(sessionId string, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error)
	GetDocument(sessionId string) (*dto.DocumentResponse, error)
}

type sessionService struct {
	sessions   *memory.SessionRepository
	publisher  IEventPublisher
	sessionTTL time.Duration
	logger     logger.ILogger
}

func NewSessionService(sessions *memory.SessionRepository, publisher IEventPublisher, sessionTTL time.Duration, log logger.ILogger) ISessionService {
	return &sessionService{
		sessions:   sessions,
		publisher:  publisher,
		sessionTTL: sessionTTL,
		logger:     log,
	}
}

// getSession is shared by every service in this package.
func getSession(sessions *memory.SessionRepository, sessionId string) (*store.Session, error) {
	sess, found := sessions.Get(sessionId)
	if !found {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found or expired")
	}
	return sess, nil
}

// applyAction runs completeAction on a locked session and publishes the
// resulting phase events. Callers must hold the session lock.
func applyAction(sess *store.Session, actionId string, publisher IEventPublisher) phases.Progress {
	before := sess.Phases.CurrentPhase().Id
	wasComplete := sess.Phases.IsComplete()
	progress := sess.Phases.CompleteAction(actionId)

	if after := sess.Phases.CurrentPhase().Id; after != before {
		publisher.Publish(events.NewPhaseAdvanced(sess.ID, before, after))
	}
	if !wasComplete && sess.Phases.IsComplete() {
		publisher.Publish(events.NewExerciseCompleted(sess.ID, sess.ParticipantName, sess.ParticipantEmail))
	}
	return progress
}

func (ss *sessionService) Start(req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	sess := &store.Session{
		ID:               uuid.New().String(),
		ParticipantName:  req.ParticipantName,
		ParticipantEmail: req.ParticipantEmail,
		Document:         constant.ScenarioDocumentV1,
		Revision:         1,
		Comments:         annotate.NewCommentSet(),
		Phases:           phases.NewMachine(phases.DefaultPhases()),
		Roster:           constant.DefaultRoster(),
		Transcripts:      make(map[string][]llm.Message),
		StartedAt:        time.Now(),
	}
	ss.sessions.Save(sess)

	token, err := serverutils.NewSessionToken(sess.ID, ss.sessionTTL)
	if err != nil {
		return nil, err
	}

	ss.logger.Info("Session", "Exercise started", map[string]interface{}{
		"session_id":  sess.ID,
		"participant": sess.ParticipantName,
	})

	return &dto.StartSessionResponse{
		SessionId: sess.ID,
		Token:     token,
		Document:  sess.Document,
		Phase:     mapper.ToPhaseResponse(sess.Phases),
	}, nil
}

func (ss *sessionService) Snapshot(sessionId string) (*dto.SessionSnapshotResponse, error) {
	sess, err := getSession(ss.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return &dto.SessionSnapshotResponse{
		SessionId:    sess.ID,
		Participant:  sess.ParticipantName,
		Document:     sess.Document,
		Revision:     sess.Revision,
		CommentCount: sess.Comments.Len(),
		Phase:        mapper.ToPhaseResponse(sess.Phases),
		StartedAt:    sess.StartedAt,
	}, nil
}

// UpdateDocument replaces the whole text. Comments were anchored against the
// prior revision, so the set is cleared wholesale.
func (ss *sessionService) UpdateDocument(sessionId string, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	sess, err := getSession(ss.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	cleared := sess.Comments.Len() > 0
	sess.Document = req.Text
	sess.Revision++
	sess.Comments.Clear()

	// Editing the draft is itself a curriculum activity.
	applyAction(sess, "draft_document", ss.publisher)

	ss.sessions.Touch(sess.ID)
	return &dto.UpdateDocumentResponse{
		Revision:        sess.Revision,
		CommentsCleared: cleared,
	}, nil
}

func (ss *sessionService) GetDocument(sessionId string) (*dto.DocumentResponse, error) {
	sess, err := getSession(ss.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return &dto.DocumentResponse{
		Text:     sess.Document,
		Revision: sess.Revision,
		Spans:    sess.Comments.OrderedNonOverlapping(),
	}, nil
}
