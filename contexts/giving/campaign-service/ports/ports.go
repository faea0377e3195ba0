package ports

import (
	"context"
	"time"

	"chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/internal/shared/events"
	"chainimpact/internal/shared/outbox"
)

type CampaignFilter struct {
	CreatorID string
	Status    entities.CampaignStatus
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	// ReplaceMilestones replaces the whole milestone list iff the stored
	// revision still equals expectedRevision.
	ReplaceMilestones(ctx context.Context, campaignID string, milestones []entities.Milestone, expectedRevision int64) error
	AddToRaisedAmount(ctx context.Context, campaignID string, amount float64) error
}

type DonationRepository interface {
	AddDonation(ctx context.Context, donation entities.Donation) error
	ListDonationsByCampaign(ctx context.Context, campaignID string) ([]entities.Donation, error)
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
