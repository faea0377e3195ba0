package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"chainimpact/contexts/verification/oracle-service/application/commands"
	"chainimpact/contexts/verification/oracle-service/application/queries"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	httptransport "chainimpact/contexts/verification/oracle-service/transport/http"
)

type Handler struct {
	VerifyMilestone  commands.VerifyMilestoneUseCase
	RegisterVerifier commands.RegisterVerifierUseCase
	CheckStatus      queries.CheckStatusUseCase
	ValidateProofURL queries.ValidateProofURLUseCase
	Logger           *slog.Logger
}

func (h Handler) VerifyMilestoneHandler(
	ctx context.Context,
	campaignID string,
	milestoneIndex int,
	req httptransport.VerifyMilestoneRequest,
) httptransport.VerifyMilestoneResponse {
	result := h.VerifyMilestone.Execute(ctx, commands.VerifyMilestoneCommand{
		CampaignID:     campaignID,
		MilestoneIndex: milestoneIndex,
		ProofURL:       req.ProofURL,
	})
	return mapVerificationResult(result)
}

func (h Handler) RegisterVerifierHandler(
	ctx context.Context,
	req httptransport.RegisterVerifierRequest,
) httptransport.RegisterVerifierResponse {
	result := h.RegisterVerifier.Execute(ctx, commands.RegisterVerifierCommand{
		WalletAddress: req.WalletAddress,
	})
	return httptransport.RegisterVerifierResponse{
		Success:    result.Success,
		VerifierID: result.VerifierID,
		Error:      result.Error,
	}
}

func (h Handler) CheckStatusHandler(ctx context.Context, verificationID string) httptransport.CheckStatusResponse {
	report := h.CheckStatus.Execute(ctx, verificationID)
	return mapStatusReport(report)
}

func (h Handler) ValidateProofURLHandler(
	ctx context.Context,
	req httptransport.ValidateProofURLRequest,
) httptransport.ValidateProofURLResponse {
	return httptransport.ValidateProofURLResponse{
		Valid: h.ValidateProofURL.Execute(ctx, req.ProofURL),
	}
}

func mapVerificationResult(result entities.VerificationResult) httptransport.VerifyMilestoneResponse {
	response := httptransport.VerifyMilestoneResponse{
		Verified:    result.Verified,
		Reason:      result.Reason,
		TxReference: result.TxReference,
		Confidence:  result.Confidence,
	}
	if !result.VerifiedAt.IsZero() {
		response.VerifiedAt = result.VerifiedAt.UTC().Format(time.RFC3339)
	}
	return response
}

func mapStatusReport(report entities.StatusReport) httptransport.CheckStatusResponse {
	response := httptransport.CheckStatusResponse{
		Status: string(report.Status),
		Reason: report.Reason,
	}
	if report.Details != nil {
		details := &httptransport.StatusDetailsDTO{
			Confidence: report.Details.Confidence,
			Verifier:   report.Details.Verifier,
		}
		if report.Details.VerifiedAt != nil {
			details.VerifiedAt = report.Details.VerifiedAt.UTC().Format(time.RFC3339)
		}
		if report.Details.EstimatedCompletion != nil {
			details.EstimatedCompletion = report.Details.EstimatedCompletion.UTC().Format(time.RFC3339)
		}
		response.Details = details
	}
	return response
}
