package simulation

import (
	"context"
	"math/rand"
	"time"

	"chainimpact/contexts/verification/oracle-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/ports"
)

// StatusProvider simulates the oracle status lookup with a weighted outcome:
// ~20% pending, ~60% verified, ~20% rejected.
type StatusProvider struct {
	Clock ports.Clock
	Roll  func() float64
}

func (p StatusProvider) CheckStatus(_ context.Context, _ string) (entities.StatusReport, error) {
	roll := p.Roll
	if roll == nil {
		roll = rand.Float64
	}
	now := time.Now().UTC()
	if p.Clock != nil {
		now = p.Clock.Now().UTC()
	}

	r := roll()
	switch {
	case r < 0.2:
		estimated := now.Add(time.Hour)
		return entities.StatusReport{
			Status: entities.VerificationStatusPending,
			Details: &entities.StatusDetails{
				Confidence:          0,
				EstimatedCompletion: &estimated,
			},
		}, nil
	case r < 0.8:
		return entities.StatusReport{
			Status: entities.VerificationStatusVerified,
			Details: &entities.StatusDetails{
				Confidence: 0.75 + roll()*0.25,
				Verifier:   entities.VerifierLabel,
				VerifiedAt: &now,
			},
		}, nil
	default:
		return entities.StatusReport{
			Status: entities.VerificationStatusRejected,
			Reason: entities.ReasonBelowThreshold,
			Details: &entities.StatusDetails{
				Confidence: roll() * 0.6,
				Verifier:   entities.VerifierLabel,
				VerifiedAt: &now,
			},
		}, nil
	}
}
