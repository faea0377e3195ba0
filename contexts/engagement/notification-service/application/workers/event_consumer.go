package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	application "chainimpact/contexts/engagement/notification-service/application"
	"chainimpact/contexts/engagement/notification-service/application/commands"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	"chainimpact/internal/shared/events"
)

const (
	topicCampaignCreated  = "campaign.created"
	topicDonationReceived = "donation.received"

	consumerGroup = "notification-service"
)

// Subscriber is the consumer side of the event bus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

// EventConsumer turns giving-context events into in-app notifications.
type EventConsumer struct {
	Append commands.AppendNotificationUseCase
	Logger *slog.Logger
}

func (c EventConsumer) Start(ctx context.Context, bus Subscriber) error {
	if err := bus.Subscribe(ctx, topicCampaignCreated, consumerGroup, c.handleCampaignCreated); err != nil {
		return err
	}
	return bus.Subscribe(ctx, topicDonationReceived, consumerGroup, c.handleDonationReceived)
}

type campaignCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	CreatorID  string `json:"creator_id"`
	Title      string `json:"title"`
}

func (c EventConsumer) handleCampaignCreated(ctx context.Context, event events.Envelope) error {
	var payload campaignCreatedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	_, err := c.Append.Execute(ctx, commands.AppendNotificationCommand{
		RecipientID: payload.CreatorID,
		Type:        entities.NotificationTypeSystem,
		Message:     fmt.Sprintf("Your campaign %q is now live.", payload.Title),
		CampaignID:  payload.CampaignID,
	})
	if err != nil {
		return err
	}

	logger := application.ResolveLogger(c.Logger)
	logger.Info("campaign created notification emitted",
		"event", "notification_campaign_created",
		"module", "engagement/notification-service",
		"layer", "worker",
		"campaign_id", payload.CampaignID,
	)
	return nil
}

type donationReceivedPayload struct {
	CampaignID    string  `json:"campaign_id"`
	CampaignTitle string  `json:"campaign_title"`
	CreatorID     string  `json:"creator_id"`
	DonorID       string  `json:"donor_id"`
	Amount        float64 `json:"amount"`
}

func (c EventConsumer) handleDonationReceived(ctx context.Context, event events.Envelope) error {
	var payload donationReceivedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	_, err := c.Append.Execute(ctx, commands.AppendNotificationCommand{
		RecipientID: payload.CreatorID,
		Type:        entities.NotificationTypeDonation,
		Message:     fmt.Sprintf("Your campaign %q received a donation of %.2f SOL.", payload.CampaignTitle, payload.Amount),
		CampaignID:  payload.CampaignID,
	})
	if err != nil {
		return err
	}

	logger := application.ResolveLogger(c.Logger)
	logger.Info("donation notification emitted",
		"event", "notification_donation_received",
		"module", "engagement/notification-service",
		"layer", "worker",
		"campaign_id", payload.CampaignID,
	)
	return nil
}
