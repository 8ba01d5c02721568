package service

import (
	"encoding/json"

	"pm-studio-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ExerciseEventsTopic is the in-process topic all session events flow over.
const ExerciseEventsTopic = "EXERCISE_EVENTS"

type IEventPublisher interface {
	Publish(event events.Event)
}

type eventPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewEventPublisher(topic string, pubSub *gochannel.GoChannel) IEventPublisher {
	return &eventPublisher{pubSub: pubSub, topic: topic}
}

type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt int64                  `json:"occurred_at"`
}

// Publish fires and forgets; event delivery is best effort and never blocks
// the request path on a slow consumer.
func (p *eventPublisher) Publish(event events.Event) {
	payload, err := json.Marshal(eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp().Unix(),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.New().String(), payload)
	go p.pubSub.Publish(p.topic, msg)
}
