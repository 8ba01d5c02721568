package service

import (
	"time"

	"pm-studio-be/internal/constant"
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRosterService interface {
	GetRoster(sessionId string) (*dto.RosterResponse, error)
	ShareDocument(sessionId string, reviewerId string) (*dto.ShareDocumentResponse, error)
	SharedDocuments(sessionId string) (*dto.SharedDocumentsResponse, error)
}

type rosterService struct {
	sessions *memory.SessionRepository
}

func NewRosterService(sessions *memory.SessionRepository) IRosterService {
	return &rosterService{sessions: sessions}
}

func (rs *rosterService) GetRoster(sessionId string) (*dto.RosterResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	reviewers := make([]store.ReviewerPersona, len(sess.Roster))
	copy(reviewers, sess.Roster)
	return &dto.RosterResponse{Reviewers: reviewers}, nil
}

// ShareDocument is idempotent per reviewer: a teammate who already shared
// their document does not share it twice.
func (rs *rosterService) ShareDocument(sessionId string, reviewerId string) (*dto.ShareDocumentResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	persona, found := sess.FindReviewer(reviewerId)
	if !found {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "reviewer not found")
	}

	for i := range sess.Shared {
		if sess.Shared[i].ReviewerId == reviewerId {
			doc := sess.Shared[i]
			return &dto.ShareDocumentResponse{
				Shared:        &doc,
				AlreadyShared: true,
				All:           append([]store.SharedDocument(nil), sess.Shared...),
			}, nil
		}
	}

	tmpl, ok := constant.SharedDocumentTemplates()[reviewerId]
	if !ok {
		tmpl.Title = persona.Name + "'s Notes"
		tmpl.Summary = "Working notes shared by " + persona.Name + "."
	}

	doc := store.SharedDocument{
		Id:         uuid.New().String(),
		ReviewerId: reviewerId,
		Title:      tmpl.Title,
		Summary:    tmpl.Summary,
		SharedAt:   time.Now(),
	}
	sess.Shared = append(sess.Shared, doc)
	rs.sessions.Touch(sess.ID)

	return &dto.ShareDocumentResponse{
		Shared:        &doc,
		AlreadyShared: false,
		All:           append([]store.SharedDocument(nil), sess.Shared...),
	}, nil
}

func (rs *rosterService) SharedDocuments(sessionId string) (*dto.SharedDocumentsResponse, error) {
	sess, err := getSession(rs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return &dto.SharedDocumentsResponse{
		Documents: append([]store.SharedDocument(nil), sess.Shared...),
	}, nil
}
