package service

import (
	"context"
	"errors"
	"time"

	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/annotate"
	"pm-studio-be/pkg/events"
	"pm-studio-be/pkg/review"
	"pm-studio-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReviewService interface {
	RequestReview(ctx context.Context, sessionId string, req *dto.RequestReviewRequest) (*dto.RequestReviewResponse, error)
	ClearReview(sessionId string) error
	Resolve(sessionId string, commentId string) (*dto.CommentListResponse, error)
	ListComments(sessionId string) (*dto.CommentListResponse, error)
}

type reviewService struct {
	sessions  *memory.SessionRepository
	runner    *review.Runner
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewReviewService(sessions *memory.SessionRepository, runner *review.Runner, publisher IEventPublisher, log logger.ILogger) IReviewService {
	return &reviewService{
		sessions:  sessions,
		runner:    runner,
		publisher: publisher,
		logger:    log,
	}
}

func (rs *reviewService) RequestReview(ctx context.Context, sessionId string, req *dto.RequestReviewRequest) (*dto.RequestReviewResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	if sess.Reviewing {
		sess.Unlock()
		return nil, serverutils.NewApiError(fiber.StatusConflict, "a review pass is already running for this session")
	}
	sess.Reviewing = true
	document := sess.Document
	revision := sess.Revision
	roster := selectReviewers(sess.Roster, req.ReviewerIds)
	sess.Unlock()

	// The pass runs outside the session lock; generation can take a while
	// and the participant may keep reading or chatting meanwhile.
	result, runErr := rs.runner.Run(ctx, document, roster)

	sess.Lock()
	defer sess.Unlock()
	sess.Reviewing = false

	if runErr != nil {
		if errors.Is(runErr, review.ErrNoEligibleReviewers) {
			// Nobody online means nothing to say, not a request failure.
			return &dto.RequestReviewResponse{
				Comments: []annotate.Comment{},
				Failures: []dto.ReviewerFailureDTO{},
			}, nil
		}
		return nil, serverutils.NewApiError(fiber.StatusUnprocessableEntity, runErr.Error())
	}

	if sess.Revision != revision {
		// The batch was anchored against a revision that no longer exists.
		rs.logger.Warn("Review", "Discarding review batch for superseded revision", map[string]interface{}{
			"session_id":  sess.ID,
			"anchored_at": revision,
			"current":     sess.Revision,
		})
		return nil, serverutils.NewApiError(fiber.StatusConflict, "document changed during the review pass, request a new review")
	}

	if result.AllFailed() {
		// The participant still gets visible feedback instead of a blank
		// document, so the exercise can continue.
		result.Comments = append(result.Comments, annotate.Comment{
			Id:          uuid.New(),
			Author:      "System",
			Perspective: "system",
			Text:        "Your reviewers are unavailable right now. Try requesting another review in a moment.",
			CreatedAt:   time.Now(),
		})
	}

	for _, c := range result.Comments {
		sess.Comments.Add(c)
	}

	applyAction(sess, "request_review", rs.publisher)
	rs.publisher.Publish(events.NewReviewCompleted(sess.ID, len(result.Comments), len(result.Failures)))
	rs.sessions.Touch(sess.ID)

	rs.logger.Info("Review", "Review pass finished", map[string]interface{}{
		"session_id": sess.ID,
		"attempted":  result.Attempted,
		"comments":   len(result.Comments),
		"failures":   len(result.Failures),
	})

	failures := make([]dto.ReviewerFailureDTO, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, dto.ReviewerFailureDTO{
			ReviewerId: f.ReviewerId,
			Reviewer:   f.Reviewer,
			Reason:     f.Err.Error(),
		})
	}

	return &dto.RequestReviewResponse{
		Comments: result.Comments,
		Failures: failures,
	}, nil
}

// selectReviewers narrows the roster to the requested ids. Unknown ids are
// ignored; an empty request means the whole roster.
func selectReviewers(roster []store.ReviewerPersona, ids []string) []store.ReviewerPersona {
	if len(ids) == 0 {
		return roster
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]store.ReviewerPersona, 0, len(ids))
	for _, r := range roster {
		if _, ok := wanted[r.Id]; ok {
			selected = append(selected, r)
		}
	}
	return selected
}

func (rs *reviewService) ClearReview(sessionId string) error {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Comments.Clear()
	return nil
}

func (rs *reviewService) Resolve(sessionId string, commentId string) (*dto.CommentListResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentId)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "invalid comment id")
	}

	sess.Lock()
	defer sess.Unlock()

	if !sess.Comments.Resolve(id) {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "comment not found")
	}
	applyAction(sess, "resolve_feedback", rs.publisher)

	return &dto.CommentListResponse{Comments: sess.Comments.All()}, nil
}

// ListComments returns every comment, overlaps included. The sidebar shows
// the whole list; only the inline span view needs disjoint spans.
func (rs *reviewService) ListComments(sessionId string) (*dto.CommentListResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return &dto.CommentListResponse{Comments: sess.Comments.All()}, nil
}
