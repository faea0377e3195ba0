package commands

import (
	"encoding/json"
	"time"

	"chainimpact/contexts/giving/campaign-service/ports"
)

const (
	TopicCampaignCreated  = "campaign.created"
	TopicDonationReceived = "donation.received"
)

func newCampaignEnvelope(
	eventID string,
	eventType string,
	campaignID string,
	occurredAt time.Time,
	payload map[string]any,
) (ports.EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "giving/campaign-service",
		OccurredAt:     occurredAt,
		EntityType:     "campaign",
		EntityID:       campaignID,
		PayloadVersion: 1,
		Payload:        raw,
	}, nil
}
