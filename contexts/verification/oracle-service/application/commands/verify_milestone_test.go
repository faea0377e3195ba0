package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/adapters/memory"
	"chainimpact/contexts/verification/oracle-service/adapters/simulation"
	"chainimpact/contexts/verification/oracle-service/application/queries"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
	domainerrors "chainimpact/contexts/verification/oracle-service/domain/errors"
)

type stubFetcher struct {
	contentType string
	err         error
}

func (f stubFetcher) Head(_ context.Context, _ string) (string, error) {
	return f.contentType, f.err
}

func seedCampaign() giving.Campaign {
	return giving.Campaign{
		CampaignID: "camp_1",
		CreatorID:  "user_creator",
		Title:      "Clean Water Wells",
		GoalAmount: 500,
		Status:     giving.CampaignStatusActive,
		Milestones: []giving.Milestone{
			{
				MilestoneID:        "ms_1",
				Title:              "Drill first well",
				TargetAmount:       100,
				VerificationStatus: giving.MilestoneVerificationPending,
			},
		},
		Revision: 3,
	}
}

func newEngine(store *memory.Store, fetcher stubFetcher, roll func() float64) VerifyMilestoneUseCase {
	return VerifyMilestoneUseCase{
		Validator:     queries.ValidateProofURLUseCase{Fetcher: fetcher},
		Classifier:    simulation.Classifier{Roll: roll},
		Campaigns:     store,
		Notifications: store,
		Clock:         store,
		IDGenerator:   store,
	}
}

func TestVerifyMilestoneSuccess(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if !result.Verified {
		t.Fatalf("expected verified result, got reason %q", result.Reason)
	}
	if !strings.HasPrefix(result.TxReference, "oracle_verification_") {
		t.Fatalf("unexpected tx reference %q", result.TxReference)
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Fatalf("confidence out of range: %f", result.Confidence)
	}
	if result.VerifiedAt.IsZero() {
		t.Fatal("expected verified timestamp")
	}

	campaign, _ := store.Campaign("camp_1")
	milestone := campaign.Milestones[0]
	if milestone.VerificationStatus != giving.MilestoneVerificationVerified {
		t.Fatalf("milestone status = %s", milestone.VerificationStatus)
	}
	if !milestone.Completed {
		t.Fatal("milestone should be completed")
	}
	if milestone.VerifiedBy != entities.VerifierLabel {
		t.Fatalf("verified by = %q", milestone.VerifiedBy)
	}
	if milestone.Verification == nil || milestone.Verification.Method != entities.VerificationMethod {
		t.Fatalf("verification details missing or wrong: %+v", milestone.Verification)
	}
	if campaign.Revision != 4 {
		t.Fatalf("revision = %d, want 4", campaign.Revision)
	}

	notifications := store.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
	if notifications[0].RecipientID != "user_creator" {
		t.Fatalf("notification recipient = %q", notifications[0].RecipientID)
	}
	if !strings.Contains(notifications[0].Message, "Drill first well") {
		t.Fatalf("notification message = %q", notifications[0].Message)
	}
}

func TestVerifyMilestoneInvalidURL(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	engine := newEngine(store, stubFetcher{err: errors.New("dial tcp: connection refused")}, func() float64 { return 0.9 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified {
		t.Fatal("expected rejection")
	}
	if result.Reason != entities.ReasonInvalidProofURL {
		t.Fatalf("reason = %q", result.Reason)
	}
	if len(store.Notifications()) != 0 {
		t.Fatal("no notification expected on rejection")
	}
}

func TestVerifyMilestoneLowImageScore(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	engine := newEngine(store, stubFetcher{contentType: "image/png"}, func() float64 { return 0.1 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.png",
	})

	if result.Verified {
		t.Fatal("expected rejection")
	}
	if result.Reason != entities.ReasonLowImageScore {
		t.Fatalf("reason = %q", result.Reason)
	}

	campaign, _ := store.Campaign("camp_1")
	if campaign.Milestones[0].VerificationStatus != giving.MilestoneVerificationPending {
		t.Fatal("milestone must stay pending after rejection")
	}
}

func TestVerifyMilestoneCampaignNotFound(t *testing.T) {
	store := memory.NewStore(nil)
	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "missing",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified || result.Reason != entities.ReasonNotFound {
		t.Fatalf("result = %+v", result)
	}
}

func TestVerifyMilestoneIndexOutOfRange(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 5,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified || result.Reason != entities.ReasonNotFound {
		t.Fatalf("result = %+v", result)
	}
}

func TestVerifyMilestoneAlreadyFinalized(t *testing.T) {
	campaign := seedCampaign()
	campaign.Milestones[0].VerificationStatus = giving.MilestoneVerificationVerified
	store := memory.NewStore([]giving.Campaign{campaign})
	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified || result.Reason != entities.ReasonFinalized {
		t.Fatalf("result = %+v", result)
	}
}

// conflictingStore fails the first replace with a revision conflict to force a
// reload.
type conflictingStore struct {
	*memory.Store
	conflicts int
}

func (c *conflictingStore) ReplaceMilestones(
	ctx context.Context,
	campaignID string,
	milestones []giving.Milestone,
	expectedRevision int64,
) error {
	if c.conflicts > 0 {
		c.conflicts--
		return domainerrors.ErrRevisionConflict
	}
	return c.Store.ReplaceMilestones(ctx, campaignID, milestones, expectedRevision)
}

func TestVerifyMilestoneRetriesRevisionConflict(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	conflicted := &conflictingStore{Store: store, conflicts: 1}

	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })
	engine.Campaigns = conflicted
	engine.ReplaceRetries = 2

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if !result.Verified {
		t.Fatalf("expected success after retry, got reason %q", result.Reason)
	}
}

func TestVerifyMilestoneExhaustedRetriesIsGenericFailure(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	conflicted := &conflictingStore{Store: store, conflicts: 10}

	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })
	engine.Campaigns = conflicted
	engine.ReplaceRetries = 1

	result := engine.Execute(context.Background(), VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified || result.Reason != entities.ReasonGenericFailure {
		t.Fatalf("result = %+v", result)
	}
}

func TestVerifyMilestoneDelayHonorsContext(t *testing.T) {
	store := memory.NewStore([]giving.Campaign{seedCampaign()})
	engine := newEngine(store, stubFetcher{contentType: "image/jpeg"}, func() float64 { return 0.9 })
	engine.Classifier = simulation.Classifier{Delay: time.Minute, Roll: func() float64 { return 0.9 }}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result := engine.Execute(ctx, VerifyMilestoneCommand{
		CampaignID:     "camp_1",
		MilestoneIndex: 0,
		ProofURL:       "https://proof.example.com/well.jpg",
	})

	if result.Verified {
		t.Fatal("expected rejection when analysis is cut short")
	}
}
