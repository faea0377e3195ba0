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

type AddMilestoneCommand struct {
	CampaignID   string
	Title        string
	Description  string
	TargetAmount float64
}

type AddMilestoneUseCase struct {
	Campaigns   ports.CampaignRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc AddMilestoneUseCase) Execute(ctx context.Context, cmd AddMilestoneCommand) (entities.Milestone, error) {
	logger := application.ResolveLogger(uc.Logger)

	title := strings.TrimSpace(cmd.Title)
	if title == "" || cmd.TargetAmount <= 0 {
		return entities.Milestone{}, domainerrors.ErrInvalidMilestoneInput
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Milestone{}, err
	}
	if len(campaign.Milestones) >= entities.MaxMilestonesPerCampaign {
		return entities.Milestone{}, domainerrors.ErrMilestoneLimitReached
	}

	milestoneID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Milestone{}, err
	}
	milestone := entities.Milestone{
		MilestoneID:        milestoneID,
		Title:              title,
		Description:        strings.TrimSpace(cmd.Description),
		TargetAmount:       cmd.TargetAmount,
		Completed:          false,
		VerificationStatus: entities.MilestoneVerificationPending,
	}

	milestones := append(append([]entities.Milestone(nil), campaign.Milestones...), milestone)
	if err := uc.Campaigns.ReplaceMilestones(ctx, campaign.CampaignID, milestones, campaign.Revision); err != nil {
		return entities.Milestone{}, err
	}

	logger.Info("milestone added",
		"event", "milestone_added",
		"module", "giving/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"milestone_id", milestone.MilestoneID,
	)
	return milestone, nil
}
