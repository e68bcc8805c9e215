package kafka

import (
	"time"

	"github.com/google/uuid"
)

// TopicStorefrontEvents — топик, в который зеркалируются события витрины
// для аналитики.
const TopicStorefrontEvents = "sagafitmi.storefront.events"

// StorefrontEvent — конверт события витрины в Kafka.
type StorefrontEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// NewStorefrontEvent создаёт конверт с уникальным идентификатором.
func NewStorefrontEvent(eventType string, payload map[string]any) StorefrontEvent {
	return StorefrontEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
