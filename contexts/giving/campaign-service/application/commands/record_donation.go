package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "chainimpact/contexts/giving/campaign-service/application"
	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	"chainimpact/contexts/giving/campaign-service/ports"
)

type RecordDonationCommand struct {
	IdempotencyKey string
	CampaignID     string
	DonorID        string
	Amount         float64
	TxSignature    string
}

type RecordDonationUseCase struct {
	Campaigns      ports.CampaignRepository
	Donations      ports.DonationRepository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type RecordDonationResult struct {
	Donation entities.Donation
	Replayed bool
}

type recordDonationReplayPayload struct {
	DonationID    string    `json:"donation_id"`
	CampaignID    string    `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	DonorID       string    `json:"donor_id"`
	Amount        float64   `json:"amount"`
	TxSignature   string    `json:"tx_signature"`
	Timestamp     time.Time `json:"timestamp"`
}

func (uc RecordDonationUseCase) Execute(ctx context.Context, cmd RecordDonationCommand) (RecordDonationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return RecordDonationResult{}, domainerrors.ErrIdempotencyKeyRequired
	}
	if cmd.Amount < entities.MinDonationAmount {
		return RecordDonationResult{}, domainerrors.ErrDonationTooSmall
	}

	now := uc.Clock.Now().UTC()
	requestHash := hashRecordDonationCommand(cmd)
	if record, found, err := uc.Idempotency.GetRecord(ctx, cmd.IdempotencyKey, now); err != nil {
		return RecordDonationResult{}, err
	} else if found {
		if record.RequestHash != requestHash {
			return RecordDonationResult{}, domainerrors.ErrIdempotencyKeyConflict
		}
		var payload recordDonationReplayPayload
		if err := json.Unmarshal(record.ResponsePayload, &payload); err != nil {
			return RecordDonationResult{}, err
		}
		return RecordDonationResult{
			Donation: entities.Donation{
				DonationID:    payload.DonationID,
				CampaignID:    payload.CampaignID,
				CampaignTitle: payload.CampaignTitle,
				DonorID:       payload.DonorID,
				Amount:        payload.Amount,
				TxSignature:   payload.TxSignature,
				Timestamp:     payload.Timestamp,
			},
			Replayed: true,
		}, nil
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return RecordDonationResult{}, err
	}

	donationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return RecordDonationResult{}, err
	}
	donation := entities.Donation{
		DonationID:    donationID,
		CampaignID:    campaign.CampaignID,
		CampaignTitle: campaign.Title,
		DonorID:       strings.TrimSpace(cmd.DonorID),
		Amount:        cmd.Amount,
		TxSignature:   strings.TrimSpace(cmd.TxSignature),
		Timestamp:     now,
	}

	if err := uc.Donations.AddDonation(ctx, donation); err != nil {
		return RecordDonationResult{}, err
	}
	if err := uc.Campaigns.AddToRaisedAmount(ctx, campaign.CampaignID, donation.Amount); err != nil {
		return RecordDonationResult{}, err
	}

	serialized, err := json.Marshal(recordDonationReplayPayload{
		DonationID:    donation.DonationID,
		CampaignID:    donation.CampaignID,
		CampaignTitle: donation.CampaignTitle,
		DonorID:       donation.DonorID,
		Amount:        donation.Amount,
		TxSignature:   donation.TxSignature,
		Timestamp:     donation.Timestamp,
	})
	if err != nil {
		return RecordDonationResult{}, err
	}
	if err := uc.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             cmd.IdempotencyKey,
		RequestHash:     requestHash,
		ResponsePayload: serialized,
		ExpiresAt:       now.Add(uc.IdempotencyTTL),
	}); err != nil {
		return RecordDonationResult{}, err
	}

	if uc.Outbox != nil {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return RecordDonationResult{}, err
		}
		envelope, err := newCampaignEnvelope(eventID, TopicDonationReceived, campaign.CampaignID, now, map[string]any{
			"campaign_id":    campaign.CampaignID,
			"campaign_title": campaign.Title,
			"creator_id":     campaign.CreatorID,
			"donor_id":       donation.DonorID,
			"amount":         donation.Amount,
		})
		if err != nil {
			return RecordDonationResult{}, err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return RecordDonationResult{}, err
		}
	}

	logger.Info("donation recorded",
		"event", "donation_recorded",
		"module", "giving/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"donation_id", donation.DonationID,
		"amount", donation.Amount,
	)
	return RecordDonationResult{Donation: donation}, nil
}

func hashRecordDonationCommand(cmd RecordDonationCommand) string {
	payload := map[string]any{
		"campaign_id":  strings.TrimSpace(cmd.CampaignID),
		"donor_id":     strings.TrimSpace(cmd.DonorID),
		"amount":       cmd.Amount,
		"tx_signature": strings.TrimSpace(cmd.TxSignature),
	}
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
