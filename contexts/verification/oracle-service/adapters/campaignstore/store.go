package campaignstore

import (
	"context"
	"errors"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	givingerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	givingports "chainimpact/contexts/giving/campaign-service/ports"
	domainerrors "chainimpact/contexts/verification/oracle-service/domain/errors"
)

// Store adapts the campaign-service repository into the oracle's campaign
// store port, translating its domain errors.
type Store struct {
	Campaigns givingports.CampaignRepository
}

func New(campaigns givingports.CampaignRepository) Store {
	return Store{Campaigns: campaigns}
}

func (s Store) GetCampaign(ctx context.Context, campaignID string) (giving.Campaign, error) {
	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return giving.Campaign{}, translate(err)
	}
	return campaign, nil
}

func (s Store) ReplaceMilestones(
	ctx context.Context,
	campaignID string,
	milestones []giving.Milestone,
	expectedRevision int64,
) error {
	if err := s.Campaigns.ReplaceMilestones(ctx, campaignID, milestones, expectedRevision); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, givingerrors.ErrCampaignNotFound):
		return domainerrors.ErrCampaignNotFound
	case errors.Is(err, givingerrors.ErrMilestoneNotFound):
		return domainerrors.ErrMilestoneNotFound
	case errors.Is(err, givingerrors.ErrRevisionConflict):
		return domainerrors.ErrRevisionConflict
	default:
		return err
	}
}
