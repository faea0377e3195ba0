package simulation

import (
	"context"
	"testing"

	"chainimpact/contexts/verification/oracle-service/domain/entities"
)

func TestStatusProviderPendingBand(t *testing.T) {
	p := StatusProvider{Roll: func() float64 { return 0.1 }}

	report, err := p.CheckStatus(context.Background(), "oracle_verification_x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != entities.VerificationStatusPending {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Reason != "" {
		t.Fatalf("pending must carry no reason, got %q", report.Reason)
	}
	if report.Details == nil || report.Details.EstimatedCompletion == nil {
		t.Fatal("pending report should estimate completion")
	}
}

func TestStatusProviderVerifiedBand(t *testing.T) {
	p := StatusProvider{Roll: func() float64 { return 0.5 }}

	report, err := p.CheckStatus(context.Background(), "oracle_verification_x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != entities.VerificationStatusVerified {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Details == nil || report.Details.Confidence < 0.75 || report.Details.Confidence > 1 {
		t.Fatalf("verified confidence out of band: %+v", report.Details)
	}
	if report.Details.Verifier != entities.VerifierLabel {
		t.Fatalf("verifier = %q", report.Details.Verifier)
	}
}

func TestStatusProviderRejectedBand(t *testing.T) {
	p := StatusProvider{Roll: func() float64 { return 0.9 }}

	report, err := p.CheckStatus(context.Background(), "oracle_verification_x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != entities.VerificationStatusRejected {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Reason != entities.ReasonBelowThreshold {
		t.Fatalf("reason = %q", report.Reason)
	}
	if report.Details == nil || report.Details.Confidence > 0.6 {
		t.Fatalf("rejected confidence out of band: %+v", report.Details)
	}
}
