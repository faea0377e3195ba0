package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"chainimpact/contexts/giving/campaign-service/application/commands"
	"chainimpact/contexts/giving/campaign-service/application/queries"
	"chainimpact/contexts/giving/campaign-service/domain/entities"
	httptransport "chainimpact/contexts/giving/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign commands.CreateCampaignUseCase
	AddMilestone   commands.AddMilestoneUseCase
	RecordDonation commands.RecordDonationUseCase
	GetCampaign    queries.GetCampaignUseCase
	ListCampaigns  queries.ListCampaignsUseCase
	ListDonations  queries.ListDonationsUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		CreatorID:     userID,
		Title:         req.Title,
		Description:   req.Description,
		GoalAmount:    req.GoalAmount,
		ImageURL:      req.ImageURL,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) AddMilestoneHandler(
	ctx context.Context,
	campaignID string,
	req httptransport.AddMilestoneRequest,
) (httptransport.AddMilestoneResponse, error) {
	milestone, err := h.AddMilestone.Execute(ctx, commands.AddMilestoneCommand{
		CampaignID:   campaignID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		return httptransport.AddMilestoneResponse{}, err
	}
	return httptransport.AddMilestoneResponse{Milestone: mapMilestone(milestone)}, nil
}

func (h Handler) RecordDonationHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	campaignID string,
	req httptransport.RecordDonationRequest,
) (httptransport.RecordDonationResponse, error) {
	result, err := h.RecordDonation.Execute(ctx, commands.RecordDonationCommand{
		IdempotencyKey: idempotencyKey,
		CampaignID:     campaignID,
		DonorID:        userID,
		Amount:         req.Amount,
		TxSignature:    req.TxSignature,
	})
	if err != nil {
		return httptransport.RecordDonationResponse{}, err
	}
	return httptransport.RecordDonationResponse{
		Donation: mapDonation(result.Donation),
		Replayed: result.Replayed,
	}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, creatorID string, status string) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		CreatorID: creatorID,
		Status:    status,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) ListDonationsHandler(ctx context.Context, campaignID string) (httptransport.ListDonationsResponse, error) {
	items, err := h.ListDonations.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.ListDonationsResponse{}, err
	}
	result := make([]httptransport.DonationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapDonation(item))
	}
	return httptransport.ListDonationsResponse{Items: result}, nil
}

func mapCampaign(campaign entities.Campaign) httptransport.CampaignDTO {
	milestones := make([]httptransport.MilestoneDTO, 0, len(campaign.Milestones))
	for _, item := range campaign.Milestones {
		milestones = append(milestones, mapMilestone(item))
	}
	return httptransport.CampaignDTO{
		CampaignID:    campaign.CampaignID,
		CreatorID:     campaign.CreatorID,
		Title:         campaign.Title,
		Description:   campaign.Description,
		GoalAmount:    campaign.GoalAmount,
		CurrentAmount: campaign.CurrentAmount,
		ImageURL:      campaign.ImageURL,
		WalletAddress: campaign.WalletAddress,
		Status:        string(campaign.Status),
		Milestones:    milestones,
		CreatedAt:     campaign.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapMilestone(milestone entities.Milestone) httptransport.MilestoneDTO {
	dto := httptransport.MilestoneDTO{
		MilestoneID:        milestone.MilestoneID,
		Title:              milestone.Title,
		Description:        milestone.Description,
		TargetAmount:       milestone.TargetAmount,
		Completed:          milestone.Completed,
		VerificationStatus: string(milestone.VerificationStatus),
		ProofURL:           milestone.ProofURL,
		VerifiedBy:         milestone.VerifiedBy,
		VerificationTxRef:  milestone.VerificationTxRef,
	}
	if milestone.VerifiedAt != nil {
		dto.VerifiedAt = milestone.VerifiedAt.UTC().Format(time.RFC3339)
	}
	if milestone.Verification != nil {
		dto.Verification = &httptransport.VerificationDetailsDTO{
			Method:     milestone.Verification.Method,
			Confidence: milestone.Verification.Confidence,
			Timestamp:  milestone.Verification.Timestamp.UTC().Format(time.RFC3339),
		}
	}
	return dto
}

func mapDonation(donation entities.Donation) httptransport.DonationDTO {
	return httptransport.DonationDTO{
		DonationID:    donation.DonationID,
		CampaignID:    donation.CampaignID,
		CampaignTitle: donation.CampaignTitle,
		DonorID:       donation.DonorID,
		Amount:        donation.Amount,
		TxSignature:   donation.TxSignature,
		Timestamp:     donation.Timestamp.UTC().Format(time.RFC3339),
	}
}
