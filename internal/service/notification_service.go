package service

import (
	"context"
	"encoding/json"
	"time"

	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/internal/pkg/mailer"
	"pm-studio-be/internal/repository/memory"
	"pm-studio-be/pkg/events"
	pktNats "pm-studio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventDelivery defines how session events reach attached clients.
// Implemented by the WebSocket Hub.
type EventDelivery interface {
	Send(sessionID string, event events.Event)
}

type INotificationService interface {
	Consume(ctx context.Context) error
}

// notificationService fans session events out: websocket push to the
// session's tabs, an optional mirror onto NATS, and the completion-report
// email when an exercise finishes.
type notificationService struct {
	pubSub      *gochannel.GoChannel
	topic       string
	delivery    EventDelivery
	natsPub     *pktNats.Publisher // may be nil
	mail        mailer.IEmailService
	mailEnabled bool
	sessions    *memory.SessionRepository
	logger      logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topic string,
	delivery EventDelivery,
	natsPub *pktNats.Publisher,
	mail mailer.IEmailService,
	mailEnabled bool,
	sessions *memory.SessionRepository,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:      pubSub,
		topic:       topic,
		delivery:    delivery,
		natsPub:     natsPub,
		mail:        mail,
		mailEnabled: mailEnabled,
		sessions:    sessions,
		logger:      log,
	}
}

func (ns *notificationService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ns *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		ns.logger.Error("Notification", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	event := events.BaseEvent{
		Type:       envelope.Type,
		Data:       envelope.Data,
		OccurredAt: time.Unix(envelope.OccurredAt, 0),
	}

	sessionId, _ := envelope.Data["session_id"].(string)
	if sessionId != "" {
		ns.delivery.Send(sessionId, event)
	}

	if ns.natsPub != nil {
		if err := ns.natsPub.Publish(ctx, event); err != nil {
			ns.logger.Warn("Notification", "NATS mirror failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if envelope.Type == events.TypeExerciseCompleted {
		ns.sendCompletionReport(envelope.Data)
	}
}

func (ns *notificationService) sendCompletionReport(data map[string]interface{}) {
	if !ns.mailEnabled {
		return
	}
	email, _ := data["email"].(string)
	participant, _ := data["participant"].(string)
	sessionId, _ := data["session_id"].(string)
	if email == "" || sessionId == "" {
		return
	}

	sess, found := ns.sessions.Get(sessionId)
	if !found {
		return
	}

	sess.Lock()
	report := mailer.CompletionReport{CommentsTotal: sess.Comments.Len()}
	for _, c := range sess.Comments.All() {
		if c.Resolved {
			report.ResolvedTotal++
		}
	}
	for _, phase := range sess.Phases.Phases() {
		if elapsed := sess.Phases.TimeInPhase(phase.Id); elapsed > 0 {
			report.PhaseDurations = append(report.PhaseDurations, mailer.PhaseDuration{
				Phase:   phase.Title,
				Elapsed: elapsed.Round(time.Second).String(),
			})
		}
	}
	sess.Unlock()

	if err := ns.mail.SendCompletionReport(email, participant, report); err != nil {
		ns.logger.Warn("Notification", "Completion report email failed", map[string]interface{}{"error": err.Error()})
		return
	}
	ns.logger.Info("Notification", "Completion report sent", map[string]interface{}{"session_id": sessionId})
}
