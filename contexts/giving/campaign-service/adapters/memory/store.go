package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	"chainimpact/contexts/giving/campaign-service/ports"
	"chainimpact/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	donations map[string][]entities.Donation
	outboxLog []outbox.Message

	idempotency map[string]ports.IdempotencyRecord
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:   campaigns,
		donations:   make(map[string][]entities.Donation),
		outboxLog:   make([]outbox.Message, 0),
		idempotency: make(map[string]ports.IdempotencyRecord),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.CreatorID != "" && campaign.CreatorID != filter.CreatorID {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ReplaceMilestones(
	_ context.Context,
	campaignID string,
	milestones []entities.Milestone,
	expectedRevision int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	if campaign.Revision != expectedRevision {
		return domainerrors.ErrRevisionConflict
	}
	campaign.Milestones = append([]entities.Milestone(nil), milestones...)
	campaign.Revision++
	campaign.UpdatedAt = time.Now().UTC()
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) AddToRaisedAmount(_ context.Context, campaignID string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return domainerrors.ErrCampaignNotFound
	}
	campaign.CurrentAmount += amount
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) AddDonation(_ context.Context, donation entities.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[donation.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.donations[donation.CampaignID] = append(s.donations[donation.CampaignID], donation)
	return nil
}

func (s *Store) ListDonationsByCampaign(_ context.Context, campaignID string) ([]entities.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.Donation(nil), s.donations[strings.TrimSpace(campaignID)]...), nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.idempotency[key]
	if !exists || now.After(record.ExpiresAt) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outboxLog = append(s.outboxLog, outbox.Message{
		OutboxID:  envelope.EventID,
		EventType: envelope.EventType,
		EntityID:  envelope.EntityID,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: envelope.OccurredAt,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0, limit)
	for _, message := range s.outboxLog {
		if message.Status != outbox.StatusPending {
			continue
		}
		items = append(items, message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outboxLog {
		if s.outboxLog[i].OutboxID == outboxID {
			s.outboxLog[i].Status = outbox.StatusPublished
			s.outboxLog[i].PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

// PendingOutbox exposes pending rows for test assertions.
func (s *Store) PendingOutbox() []outbox.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0)
	for _, message := range s.outboxLog {
		if message.Status == outbox.StatusPending {
			items = append(items, message)
		}
	}
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
