package service

import (
	"context"
	"testing"
	"time"

	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventConsumerRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	eventsCore, eventsLogs := observer.New(zap.InfoLevel)
	sysCore, sysLogs := observer.New(zap.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewEventConsumer(pubSub, logger.NewWithCore(eventsCore), logger.NewWithCore(sysCore))
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewEventPublisher(pubSub, nopLogger())
	at := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.Publish(ctx, events.NewCleanupCompleted(2, 2048, 30, at)))

	require.Eventually(t, func() bool {
		return eventsLogs.FilterMessage(events.TopicCleanupCompleted).Len() == 1
	}, time.Second, 10*time.Millisecond)

	entry := eventsLogs.FilterMessage(events.TopicCleanupCompleted).All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "EVENTS", fields["module"])
	details, ok := fields["details"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, details["message_id"])
	assert.NotNil(t, details["data"])

	t.Run("malformed payload is acked and dropped", func(t *testing.T) {
		msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
		require.NoError(t, pubSub.Publish(events.TopicBatchProcessed, msg))

		require.Eventually(t, func() bool {
			return sysLogs.FilterMessage("Dropping malformed event").Len() == 1
		}, time.Second, 10*time.Millisecond)

		dropped := sysLogs.FilterMessage("Dropping malformed event").All()[0]
		assert.Equal(t, zap.WarnLevel, dropped.Level)
		assert.Zero(t, eventsLogs.FilterMessage(events.TopicBatchProcessed).Len())
		assert.Equal(t, 1, eventsLogs.Len())
	})
}
