package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"chainimpact/contexts/giving/campaign-service/adapters/memory"
	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
)

func newCreateCampaign(store *memory.Store) CreateCampaignUseCase {
	return CreateCampaignUseCase{
		Campaigns:   store,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestCreateCampaignEmitsOutboxEvent(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateCampaign(store)

	campaign, err := uc.Execute(context.Background(), CreateCampaignCommand{
		CreatorID:   "user_1",
		Title:       "Solar for Schools",
		Description: "Panels for three rural schools",
		GoalAmount:  1000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if campaign.Status != entities.CampaignStatusActive {
		t.Fatalf("status = %s", campaign.Status)
	}
	if campaign.Revision != 0 {
		t.Fatalf("revision = %d", campaign.Revision)
	}

	pending := store.PendingOutbox()
	if len(pending) != 1 {
		t.Fatalf("outbox rows = %d, want 1", len(pending))
	}
	if pending[0].EventType != TopicCampaignCreated {
		t.Fatalf("event type = %s", pending[0].EventType)
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateCampaign(store)

	cases := []CreateCampaignCommand{
		{CreatorID: "user_1", Title: "", Description: "d", GoalAmount: 10},
		{CreatorID: "user_1", Title: "t", Description: "", GoalAmount: 10},
		{CreatorID: "user_1", Title: "t", Description: "d", GoalAmount: 0},
		{CreatorID: "", Title: "t", Description: "d", GoalAmount: 10},
	}
	for i, cmd := range cases {
		if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
			t.Fatalf("case %d: err = %v", i, err)
		}
	}
}

func TestAddMilestoneCapEnforced(t *testing.T) {
	store := memory.NewStore(nil)
	create := newCreateCampaign(store)
	campaign, err := create.Execute(context.Background(), CreateCampaignCommand{
		CreatorID:   "user_1",
		Title:       "Food Bank Expansion",
		Description: "New cold storage",
		GoalAmount:  2000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	add := AddMilestoneUseCase{Campaigns: store, Clock: store, IDGenerator: store}
	for i := 0; i < entities.MaxMilestonesPerCampaign; i++ {
		if _, err := add.Execute(context.Background(), AddMilestoneCommand{
			CampaignID:   campaign.CampaignID,
			Title:        fmt.Sprintf("Milestone %d", i+1),
			TargetAmount: 100,
		}); err != nil {
			t.Fatalf("milestone %d failed: %v", i+1, err)
		}
	}

	_, err = add.Execute(context.Background(), AddMilestoneCommand{
		CampaignID:   campaign.CampaignID,
		Title:        "One too many",
		TargetAmount: 100,
	})
	if !errors.Is(err, domainerrors.ErrMilestoneLimitReached) {
		t.Fatalf("err = %v", err)
	}

	stored, err := store.GetCampaign(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Milestones) != entities.MaxMilestonesPerCampaign {
		t.Fatalf("milestones = %d", len(stored.Milestones))
	}
	if stored.Revision != int64(entities.MaxMilestonesPerCampaign) {
		t.Fatalf("revision = %d", stored.Revision)
	}
}

func TestAddMilestoneRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(nil)
	add := AddMilestoneUseCase{Campaigns: store, Clock: store, IDGenerator: store}

	if _, err := add.Execute(context.Background(), AddMilestoneCommand{
		CampaignID:   "camp_1",
		Title:        "",
		TargetAmount: 100,
	}); !errors.Is(err, domainerrors.ErrInvalidMilestoneInput) {
		t.Fatalf("err = %v", err)
	}
	if _, err := add.Execute(context.Background(), AddMilestoneCommand{
		CampaignID:   "camp_1",
		Title:        "Valid title",
		TargetAmount: 0,
	}); !errors.Is(err, domainerrors.ErrInvalidMilestoneInput) {
		t.Fatalf("err = %v", err)
	}
}

func newRecordDonation(store *memory.Store) RecordDonationUseCase {
	return RecordDonationUseCase{
		Campaigns:      store,
		Donations:      store,
		Idempotency:    store,
		Outbox:         store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
	}
}

func seededStore(t *testing.T) (*memory.Store, entities.Campaign) {
	t.Helper()
	store := memory.NewStore(nil)
	campaign, err := newCreateCampaign(store).Execute(context.Background(), CreateCampaignCommand{
		CreatorID:   "user_creator",
		Title:       "River Cleanup",
		Description: "Weekly cleanup crew",
		GoalAmount:  300,
	})
	if err != nil {
		t.Fatalf("seed campaign failed: %v", err)
	}
	return store, campaign
}

func TestRecordDonationUpdatesRaisedAmount(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	result, err := uc.Execute(context.Background(), RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         2.5,
		TxSignature:    "sig_abc",
	})
	if err != nil {
		t.Fatalf("donation failed: %v", err)
	}
	if result.Replayed {
		t.Fatal("first call must not be a replay")
	}
	if result.Donation.CampaignTitle != "River Cleanup" {
		t.Fatalf("campaign title = %q", result.Donation.CampaignTitle)
	}

	stored, _ := store.GetCampaign(context.Background(), campaign.CampaignID)
	if stored.CurrentAmount != 2.5 {
		t.Fatalf("current amount = %f", stored.CurrentAmount)
	}
}

func TestRecordDonationBelowMinimum(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	_, err := uc.Execute(context.Background(), RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         entities.MinDonationAmount / 2,
	})
	if !errors.Is(err, domainerrors.ErrDonationTooSmall) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecordDonationIdempotentReplay(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	cmd := RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         5,
		TxSignature:    "sig_abc",
	}
	first, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !second.Replayed {
		t.Fatal("second call must replay")
	}
	if second.Donation.DonationID != first.Donation.DonationID {
		t.Fatalf("replayed donation id differs: %s vs %s", first.Donation.DonationID, second.Donation.DonationID)
	}

	stored, _ := store.GetCampaign(context.Background(), campaign.CampaignID)
	if stored.CurrentAmount != 5 {
		t.Fatalf("replay must not double-count, amount = %f", stored.CurrentAmount)
	}
}

func TestRecordDonationKeyReuseWithDifferentPayload(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	if _, err := uc.Execute(context.Background(), RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         5,
	}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         9,
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecordDonationMissingKey(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	_, err := uc.Execute(context.Background(), RecordDonationCommand{
		CampaignID: campaign.CampaignID,
		DonorID:    "user_donor",
		Amount:     5,
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecordDonationEmitsOutboxEvent(t *testing.T) {
	store, campaign := seededStore(t)
	uc := newRecordDonation(store)

	if _, err := uc.Execute(context.Background(), RecordDonationCommand{
		IdempotencyKey: "don-1",
		CampaignID:     campaign.CampaignID,
		DonorID:        "user_donor",
		Amount:         5,
	}); err != nil {
		t.Fatalf("donation failed: %v", err)
	}

	var donationEvents int
	for _, message := range store.PendingOutbox() {
		if message.EventType == TopicDonationReceived {
			donationEvents++
		}
	}
	if donationEvents != 1 {
		t.Fatalf("donation.received events = %d, want 1", donationEvents)
	}
}
