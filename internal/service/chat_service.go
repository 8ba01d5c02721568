package service

import (
	"context"
	"fmt"
	"time"

	"pm-studio-be/internal/constant"
	"pm-studio-be/internal/dto"
	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/serverutils"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IChatService interface {
	SendChat(ctx context.Context, sessionId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetTranscript(sessionId string, reviewerId string) (*dto.TranscriptResponse, error)
}

type chatService struct {
	sessions *memory.SessionRepository
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewChatService(sessions *memory.SessionRepository, provider llm.LLMProvider, log logger.ILogger) IChatService {
	return &chatService{
		sessions: sessions,
		provider: provider,
		logger:   log,
	}
}

func (cs *chatService) SendChat(ctx context.Context, sessionId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sess, err := getSession(cs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	persona, found := sess.FindReviewer(req.ReviewerId)
	if !found {
		sess.Unlock()
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "reviewer not found")
	}

	if !persona.Eligible() {
		// Offline teammates never reach the model.
		reply := fmt.Sprintf(constant.UnavailableChatReplyV1, persona.Name)
		sess.Unlock()
		return &dto.SendChatResponse{
			ReviewerId: persona.Id,
			Reply:      reply,
			Available:  false,
			SentAt:     time.Now(),
		}, nil
	}

	history := make([]llm.Message, 0, len(sess.Transcripts[persona.Id])+2)
	history = append(history, llm.Message{
		Role:    constant.ChatRoleSystem,
		Content: fmt.Sprintf(constant.ChatPersonaPromptV1, persona.Name, persona.Role),
	})
	history = append(history, sess.Transcripts[persona.Id]...)
	history = append(history, llm.Message{Role: constant.ChatRoleUser, Content: req.Message})
	sess.Unlock()

	reply, err := cs.provider.Chat(ctx, history, llm.WithTemperature(0.8))
	if err != nil {
		cs.logger.Error("Chat", "Persona generation failed", map[string]interface{}{
			"session_id":  sessionId,
			"reviewer_id": persona.Id,
			"error":       err.Error(),
		})
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "reviewer did not answer, please retry")
	}

	sess.Lock()
	sess.Transcripts[persona.Id] = append(sess.Transcripts[persona.Id],
		llm.Message{Role: constant.ChatRoleUser, Content: req.Message},
		llm.Message{Role: constant.ChatRoleAssistant, Content: reply},
	)
	sess.Unlock()
	cs.sessions.Touch(sessionId)

	return &dto.SendChatResponse{
		ReviewerId: persona.Id,
		Reply:      reply,
		Available:  true,
		SentAt:     time.Now(),
	}, nil
}

func (cs *chatService) GetTranscript(sessionId string, reviewerId string) (*dto.TranscriptResponse, error) {
	sess, err := getSession(cs.sessions, sessionId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if _, found := sess.FindReviewer(reviewerId); !found {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "reviewer not found")
	}

	messages := make([]dto.ChatMessageDTO, 0, len(sess.Transcripts[reviewerId]))
	for _, m := range sess.Transcripts[reviewerId] {
		messages = append(messages, dto.ChatMessageDTO{Role: m.Role, Content: m.Content})
	}
	return &dto.TranscriptResponse{ReviewerId: reviewerId, Messages: messages}, nil
}
