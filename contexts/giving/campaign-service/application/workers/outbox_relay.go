package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "chainimpact/contexts/giving/campaign-service/application"
	"chainimpact/contexts/giving/campaign-service/ports"
)

// OutboxRelay drains pending outbox rows onto the event bus. Rows that fail to
// publish stay pending and are retried on the next sweep.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := j.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox sweep failed",
			"event", "outbox_sweep_failed",
			"module", "giving/campaign-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload malformed",
				"event", "outbox_payload_malformed",
				"module", "giving/campaign-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			continue
		}
		if err := j.Publisher.Publish(ctx, message.EventType, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_publish_failed",
				"module", "giving/campaign-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			continue
		}
		if err := j.Outbox.MarkOutboxPublished(ctx, message.OutboxID, j.Clock.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}
