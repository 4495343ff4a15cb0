package service

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IEventPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

type eventPublisher struct {
	publisher message.Publisher
	logger    logger.ILogger
}

func NewEventPublisher(publisher message.Publisher, log logger.ILogger) IEventPublisher {
	return &eventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, evt events.Event) error {
	payload, err := json.Marshal(events.BaseEvent{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(evt.EventType(), msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// NopEventPublisher drops events; used when no bus is wired.
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, events.Event) error { return nil }
