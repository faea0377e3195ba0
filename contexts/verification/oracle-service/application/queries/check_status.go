package queries

import (
	"context"
	"log/slog"
	"strings"

	application "chainimpact/contexts/verification/oracle-service/application"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/ports"
)

// CheckStatusUseCase resolves a verification id to one of the three
// enumerated statuses. A provider failure degrades to pending; Reason is set
// only on rejection.
type CheckStatusUseCase struct {
	Provider ports.StatusProvider
	Logger   *slog.Logger
}

func (uc CheckStatusUseCase) Execute(ctx context.Context, verificationID string) entities.StatusReport {
	logger := application.ResolveLogger(uc.Logger)

	report, err := uc.Provider.CheckStatus(ctx, strings.TrimSpace(verificationID))
	if err != nil {
		logger.Error("verification status lookup failed",
			"event", "verification_status_failed",
			"module", "verification/oracle-service",
			"layer", "application",
			"verification_id", verificationID,
			"error", err.Error(),
		)
		return entities.StatusReport{Status: entities.VerificationStatusPending}
	}
	if report.Status != entities.VerificationStatusRejected {
		report.Reason = ""
	}
	return report
}
