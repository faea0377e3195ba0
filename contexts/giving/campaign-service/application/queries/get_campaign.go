package queries

import (
	"context"
	"log/slog"
	"strings"

	"chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/contexts/giving/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

type ListCampaignsQuery struct {
	CreatorID string
	Status    string
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	return uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		CreatorID: strings.TrimSpace(query.CreatorID),
		Status:    entities.CampaignStatus(strings.TrimSpace(query.Status)),
	})
}

type ListDonationsUseCase struct {
	Donations ports.DonationRepository
	Logger    *slog.Logger
}

func (uc ListDonationsUseCase) Execute(ctx context.Context, campaignID string) ([]entities.Donation, error) {
	return uc.Donations.ListDonationsByCampaign(ctx, strings.TrimSpace(campaignID))
}
