package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape used across ChainImpact services.
// Outbox rows and bus messages both carry this envelope.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	PayloadVersion int            `json:"payload_version"`
	Payload       json.RawMessage `json:"payload"`
}
