package queries

import (
	"context"
	"errors"
	"testing"

	"chainimpact/contexts/verification/oracle-service/domain/entities"
)

type stubStatusProvider struct {
	report entities.StatusReport
	err    error
}

func (p stubStatusProvider) CheckStatus(_ context.Context, _ string) (entities.StatusReport, error) {
	return p.report, p.err
}

func TestCheckStatusRejectionKeepsReason(t *testing.T) {
	uc := CheckStatusUseCase{Provider: stubStatusProvider{
		report: entities.StatusReport{
			Status: entities.VerificationStatusRejected,
			Reason: entities.ReasonBelowThreshold,
		},
	}}

	report := uc.Execute(context.Background(), "oracle_verification_abc")
	if report.Status != entities.VerificationStatusRejected {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Reason != entities.ReasonBelowThreshold {
		t.Fatalf("reason = %q", report.Reason)
	}
}

func TestCheckStatusClearsReasonWhenNotRejected(t *testing.T) {
	for _, status := range []entities.VerificationStatus{
		entities.VerificationStatusPending,
		entities.VerificationStatusVerified,
	} {
		uc := CheckStatusUseCase{Provider: stubStatusProvider{
			report: entities.StatusReport{Status: status, Reason: "leaked internal detail"},
		}}

		report := uc.Execute(context.Background(), "oracle_verification_abc")
		if report.Reason != "" {
			t.Fatalf("status %s must carry no reason, got %q", status, report.Reason)
		}
	}
}

func TestCheckStatusProviderErrorDegradesToPending(t *testing.T) {
	uc := CheckStatusUseCase{Provider: stubStatusProvider{err: errors.New("lookup timeout")}}

	report := uc.Execute(context.Background(), "oracle_verification_abc")
	if report.Status != entities.VerificationStatusPending {
		t.Fatalf("status = %s", report.Status)
	}
	if report.Reason != "" {
		t.Fatalf("reason = %q", report.Reason)
	}
}
