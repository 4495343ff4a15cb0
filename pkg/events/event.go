package events

import "time"

// Topics double as event types.
const (
	TopicBatchProcessed   = "summarizer.batch_processed"
	TopicCleanupCompleted = "summarizer.cleanup_completed"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the topic this event is published on.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewBatchProcessed(sessionID string, uploadIDs []uint, cachedCount int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TopicBatchProcessed,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"upload_ids":   uploadIDs,
			"file_count":   len(uploadIDs),
			"cached_count": cachedCount,
		},
		OccurredAt: at,
	}
}

func NewCleanupCompleted(deletedCount int, freedBytes int64, retentionDays int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TopicCleanupCompleted,
		Data: map[string]interface{}{
			"deleted_count":  deletedCount,
			"freed_bytes":    freedBytes,
			"retention_days": retentionDays,
		},
		OccurredAt: at,
	}
}
