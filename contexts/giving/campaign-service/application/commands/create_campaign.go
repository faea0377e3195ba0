package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chainimpact/contexts/giving/campaign-service/application"
	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	"chainimpact/contexts/giving/campaign-service/ports"
)

type CreateCampaignCommand struct {
	CreatorID     string
	Title         string
	Description   string
	GoalAmount    float64
	ImageURL      string
	WalletAddress string
}

type CreateCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	campaign := entities.Campaign{
		CampaignID:    campaignID,
		CreatorID:     strings.TrimSpace(cmd.CreatorID),
		Title:         strings.TrimSpace(cmd.Title),
		Description:   strings.TrimSpace(cmd.Description),
		GoalAmount:    cmd.GoalAmount,
		CurrentAmount: 0,
		ImageURL:      strings.TrimSpace(cmd.ImageURL),
		WalletAddress: strings.TrimSpace(cmd.WalletAddress),
		Status:        entities.CampaignStatusActive,
		Milestones:    []entities.Milestone{},
		Revision:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	if uc.Outbox != nil {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.Campaign{}, err
		}
		envelope, err := newCampaignEnvelope(eventID, TopicCampaignCreated, campaign.CampaignID, now, map[string]any{
			"campaign_id": campaign.CampaignID,
			"creator_id":  campaign.CreatorID,
			"title":       campaign.Title,
		})
		if err != nil {
			return entities.Campaign{}, err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return entities.Campaign{}, err
		}
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "giving/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"creator_id", campaign.CreatorID,
	)
	return campaign, nil
}
