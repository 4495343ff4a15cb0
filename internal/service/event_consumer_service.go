package service

import (
	"context"
	"encoding/json"

	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IEventConsumer interface {
	Consume(ctx context.Context) error
}

// eventConsumer writes every domain event to the events log.
type eventConsumer struct {
	subscriber   message.Subscriber
	topics       []string
	eventsLogger logger.ILogger
	logger       logger.ILogger
}

func NewEventConsumer(subscriber message.Subscriber, eventsLogger, log logger.ILogger) IEventConsumer {
	return &eventConsumer{
		subscriber:   subscriber,
		topics:       []string{events.TopicBatchProcessed, events.TopicCleanupCompleted},
		eventsLogger: eventsLogger,
		logger:       log,
	}
}

func (c *eventConsumer) Consume(ctx context.Context) error {
	for _, topic := range c.topics {
		messages, err := c.subscriber.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				c.processMessage(topic, msg)
			}
		}(topic, messages)
	}
	return nil
}

func (c *eventConsumer) processMessage(topic string, msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		c.logger.Warn("EVENTS", "Dropping malformed event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent redelivery
		return
	}

	c.eventsLogger.Info("EVENTS", evt.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": evt.OccurredAt,
		"data":        evt.Data,
	})
	msg.Ack()
}
