package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	domainerrors "chainimpact/contexts/verification/oracle-service/domain/errors"
	"chainimpact/contexts/verification/oracle-service/ports"

	"github.com/google/uuid"
)

// Store backs the oracle ports in memory for tests and local runs.
type Store struct {
	mu sync.RWMutex

	campaigns     map[string]giving.Campaign
	notifications []ports.MilestoneNotification
	verifiers     map[string]entities.VerifierRegistration
}

func NewStore(seed []giving.Campaign) *Store {
	campaigns := make(map[string]giving.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns: campaigns,
		verifiers: make(map[string]entities.VerifierRegistration),
	}
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (giving.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return giving.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ReplaceMilestones(
	_ context.Context,
	campaignID string,
	milestones []giving.Milestone,
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
	campaign.Milestones = append([]giving.Milestone(nil), milestones...)
	campaign.Revision++
	campaign.UpdatedAt = time.Now().UTC()
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) AppendNotification(_ context.Context, notification ports.MilestoneNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *Store) SaveVerifier(_ context.Context, registration entities.VerifierRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.verifiers[registration.VerifierID] = registration
	return nil
}

func (s *Store) GetVerifier(_ context.Context, verifierID string) (entities.VerifierRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registration, exists := s.verifiers[strings.TrimSpace(verifierID)]
	if !exists {
		return entities.VerifierRegistration{}, domainerrors.ErrVerifierNotFound
	}
	return registration, nil
}

// Campaign exposes stored aggregate state for test assertions.
func (s *Store) Campaign(campaignID string) (giving.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[campaignID]
	return item, exists
}

// Notifications exposes appended records for test assertions.
func (s *Store) Notifications() []ports.MilestoneNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.MilestoneNotification(nil), s.notifications...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
