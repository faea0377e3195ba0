package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	application "chainimpact/contexts/verification/oracle-service/application"
	"chainimpact/contexts/verification/oracle-service/application/queries"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	domainerrors "chainimpact/contexts/verification/oracle-service/domain/errors"
	"chainimpact/contexts/verification/oracle-service/ports"
)

const verificationTokenPrefix = "oracle_verification_"

type VerifyMilestoneCommand struct {
	CampaignID     string
	MilestoneIndex int
	ProofURL       string
}

// VerifyMilestoneUseCase is the verification engine. It orchestrates URL
// validation, content analysis, milestone persistence and notification
// emission. All failure is communicated through the result shape; nothing is
// raised above this boundary.
type VerifyMilestoneUseCase struct {
	Validator     queries.ValidateProofURLUseCase
	Classifier    ports.ContentClassifier
	Campaigns     ports.CampaignStore
	Notifications ports.NotificationAppender
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	// ReplaceRetries bounds reloads after a revision conflict. Zero means one
	// extra attempt.
	ReplaceRetries int
	Logger         *slog.Logger
}

func (uc VerifyMilestoneUseCase) Execute(ctx context.Context, cmd VerifyMilestoneCommand) entities.VerificationResult {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("oracle verifying milestone",
		"event", "milestone_verification_started",
		"module", "verification/oracle-service",
		"layer", "application",
		"campaign_id", cmd.CampaignID,
		"milestone_index", cmd.MilestoneIndex,
	)

	result, err := uc.run(ctx, cmd)
	if err != nil {
		logger.Error("milestone verification failed",
			"event", "milestone_verification_failed",
			"module", "verification/oracle-service",
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"milestone_index", cmd.MilestoneIndex,
			"error", err.Error(),
		)
		return entities.VerificationResult{Verified: false, Reason: entities.ReasonGenericFailure}
	}
	return result
}

func (uc VerifyMilestoneUseCase) run(ctx context.Context, cmd VerifyMilestoneCommand) (entities.VerificationResult, error) {
	if !uc.Validator.Execute(ctx, cmd.ProofURL) {
		return entities.VerificationResult{Verified: false, Reason: entities.ReasonInvalidProofURL}, nil
	}

	analysis := uc.Classifier.Classify(ctx, cmd.ProofURL)
	if !analysis.Valid {
		reason := analysis.Reason
		if reason == "" {
			reason = "Proof content analysis failed"
		}
		return entities.VerificationResult{Verified: false, Reason: reason}, nil
	}

	suffix, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.VerificationResult{}, err
	}
	txReference := verificationTokenPrefix + suffix
	verifiedAt := uc.Clock.Now().UTC()

	milestoneTitle, creatorID, err := uc.persistVerification(ctx, cmd, analysis.Confidence, txReference)
	switch {
	case errors.Is(err, domainerrors.ErrCampaignNotFound), errors.Is(err, domainerrors.ErrMilestoneNotFound):
		return entities.VerificationResult{Verified: false, Reason: entities.ReasonNotFound}, nil
	case errors.Is(err, domainerrors.ErrMilestoneFinalized):
		return entities.VerificationResult{Verified: false, Reason: entities.ReasonFinalized}, nil
	case err != nil:
		return entities.VerificationResult{}, err
	}

	if err := uc.Notifications.AppendNotification(ctx, ports.MilestoneNotification{
		RecipientID:    creatorID,
		Message:        fmt.Sprintf("Milestone %q has been verified!", milestoneTitle),
		CampaignID:     strings.TrimSpace(cmd.CampaignID),
		MilestoneIndex: cmd.MilestoneIndex,
	}); err != nil {
		// The milestone update above is already committed; atomicity across
		// persistence and notification is not provided.
		return entities.VerificationResult{}, err
	}

	return entities.VerificationResult{
		Verified:    true,
		TxReference: txReference,
		Confidence:  analysis.Confidence,
		VerifiedAt:  verifiedAt,
	}, nil
}

func (uc VerifyMilestoneUseCase) persistVerification(
	ctx context.Context,
	cmd VerifyMilestoneCommand,
	confidence float64,
	txReference string,
) (milestoneTitle string, creatorID string, err error) {
	attempts := uc.ReplaceRetries
	if attempts <= 0 {
		attempts = 1
	}

	campaignID := strings.TrimSpace(cmd.CampaignID)
	for attempt := 0; attempt <= attempts; attempt++ {
		campaign, err := uc.Campaigns.GetCampaign(ctx, campaignID)
		if err != nil {
			return "", "", err
		}
		if cmd.MilestoneIndex < 0 || cmd.MilestoneIndex >= len(campaign.Milestones) {
			return "", "", domainerrors.ErrMilestoneNotFound
		}

		milestones := append([]giving.Milestone(nil), campaign.Milestones...)
		milestone := milestones[cmd.MilestoneIndex]
		if milestone.Terminal() {
			return "", "", domainerrors.ErrMilestoneFinalized
		}

		now := uc.Clock.Now().UTC()
		milestone.VerificationStatus = giving.MilestoneVerificationVerified
		milestone.Completed = true
		milestone.VerifiedAt = &now
		milestone.VerifiedBy = entities.VerifierLabel
		milestone.VerificationTxRef = txReference
		milestone.ProofURL = strings.TrimSpace(cmd.ProofURL)
		milestone.Verification = &giving.VerificationDetails{
			Method:     entities.VerificationMethod,
			Confidence: confidence,
			Timestamp:  now,
		}
		milestones[cmd.MilestoneIndex] = milestone

		err = uc.Campaigns.ReplaceMilestones(ctx, campaignID, milestones, campaign.Revision)
		if errors.Is(err, domainerrors.ErrRevisionConflict) {
			continue
		}
		if err != nil {
			return "", "", err
		}
		return milestone.Title, campaign.CreatorID, nil
	}
	return "", "", domainerrors.ErrRevisionConflict
}
