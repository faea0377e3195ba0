package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chainimpact/contexts/verification/oracle-service/application"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/ports"
)

type RegisterVerifierCommand struct {
	WalletAddress string
}

// RegisterVerifierUseCase admits a wallet as a verifier when its balance
// meets the platform minimum. Failures are result-shaped, never raised.
type RegisterVerifierUseCase struct {
	Balances    ports.WalletBalances
	Registry    ports.VerifierRegistry
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc RegisterVerifierUseCase) Execute(ctx context.Context, cmd RegisterVerifierCommand) entities.RegistrationResult {
	logger := application.ResolveLogger(uc.Logger)

	wallet := strings.TrimSpace(cmd.WalletAddress)
	if wallet == "" {
		return entities.RegistrationResult{Success: false, Error: entities.ReasonRegistrationFailed}
	}

	balance, err := uc.Balances.Balance(ctx, wallet)
	if err != nil {
		logger.Error("verifier balance lookup failed",
			"event", "verifier_registration_failed",
			"module", "verification/oracle-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.RegistrationResult{Success: false, Error: entities.ReasonRegistrationFailed}
	}
	if balance < entities.MinVerifierBalance {
		return entities.RegistrationResult{Success: false, Error: entities.ReasonInsufficientBalance}
	}

	suffix, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.RegistrationResult{Success: false, Error: entities.ReasonRegistrationFailed}
	}
	verifierID := "verifier_" + walletPrefix(wallet) + "_" + shortSuffix(suffix)

	if uc.Registry != nil {
		if err := uc.Registry.SaveVerifier(ctx, entities.VerifierRegistration{
			VerifierID:    verifierID,
			WalletAddress: wallet,
			RegisteredAt:  uc.Clock.Now().UTC(),
		}); err != nil {
			logger.Error("verifier registration persist failed",
				"event", "verifier_registration_failed",
				"module", "verification/oracle-service",
				"layer", "application",
				"error", err.Error(),
			)
			return entities.RegistrationResult{Success: false, Error: entities.ReasonRegistrationFailed}
		}
	}

	logger.Info("verifier registered",
		"event", "verifier_registered",
		"module", "verification/oracle-service",
		"layer", "application",
		"verifier_id", verifierID,
	)
	return entities.RegistrationResult{Success: true, VerifierID: verifierID}
}

func walletPrefix(wallet string) string {
	if len(wallet) <= 8 {
		return wallet
	}
	return wallet[:8]
}

func shortSuffix(id string) string {
	trimmed := strings.ReplaceAll(id, "-", "")
	if len(trimmed) <= 8 {
		return trimmed
	}
	return trimmed[:8]
}
