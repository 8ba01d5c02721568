package service

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/events"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/review"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// editingLLM rewrites the document through the session service while a
// review pass is in flight, then answers with spans anchored to the old
// text.
type editingLLM struct {
	sessions  ISessionService
	sessionId string
	edited    bool
	reply     string
}

func (p *editingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if !p.edited {
		p.edited = true
		if _, err := p.sessions.UpdateDocument(p.sessionId, &dto.UpdateDocumentRequest{Text: "tiny"}); err != nil {
			return "", err
		}
	}
	return p.reply, nil
}

func (p *editingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil)
}

func TestRequestReviewDiscardsBatchAfterMidPassEdit(t *testing.T) {
	t.Setenv("JWT_SECRET", "flow-test-secret")

	sessions := memory.NewSessionRepository(time.Hour)
	publisher := &capturingPublisher{}
	quiet := log.New(os.Stderr, "", 0)

	sessionSvc := NewSessionService(sessions, publisher, time.Hour, testServiceLogger())

	provider := &editingLLM{
		sessions: sessionSvc,
		reply:    `{"comments":[{"text_excerpt":"checkout abandonment","comment":"anchored to the old draft"}]}`,
	}
	runner := review.NewRunner(provider, quiet, review.WithDelay(0))
	reviewSvc := NewReviewService(sessions, runner, publisher, testServiceLogger())

	started, err := sessionSvc.Start(&dto.StartSessionRequest{ParticipantName: "Alex"})
	require.NoError(t, err)
	provider.sessionId = started.SessionId

	_, err = reviewSvc.RequestReview(context.Background(), started.SessionId, &dto.RequestReviewRequest{})
	require.Error(t, err)
	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusConflict, apiErr.Status)
	assert.NotContains(t, publisher.typesSeen(), events.TypeReviewCompleted)

	// The batch never reaches the rewritten document.
	doc, err := sessionSvc.GetDocument(started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "tiny", doc.Text)
	assert.Equal(t, 2, doc.Revision)
	assert.Empty(t, doc.Spans)

	list, err := reviewSvc.ListComments(started.SessionId)
	require.NoError(t, err)
	assert.Empty(t, list.Comments)
}

func TestRequestReviewNoEligibleReviewers(t *testing.T) {
	t.Setenv("JWT_SECRET", "flow-test-secret")

	sessions := memory.NewSessionRepository(time.Hour)
	publisher := &capturingPublisher{}
	quiet := log.New(os.Stderr, "", 0)

	provider := &scriptedLLM{}
	runner := review.NewRunner(provider, quiet, review.WithDelay(0))

	sessionSvc := NewSessionService(sessions, publisher, time.Hour, testServiceLogger())
	reviewSvc := NewReviewService(sessions, runner, publisher, testServiceLogger())

	started, err := sessionSvc.Start(&dto.StartSessionRequest{ParticipantName: "Alex"})
	require.NoError(t, err)

	// The support lead is the only offline persona in the default roster.
	res, err := reviewSvc.RequestReview(context.Background(), started.SessionId, &dto.RequestReviewRequest{
		ReviewerIds: []string{"support"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Comments)
	assert.Empty(t, res.Failures)
	assert.Zero(t, provider.calls)
	assert.NotContains(t, publisher.typesSeen(), events.TypeReviewCompleted)
}
