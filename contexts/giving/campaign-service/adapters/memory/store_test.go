package memory

import (
	"context"
	"errors"
	"testing"

	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
)

func TestReplaceMilestonesRevisionGuard(t *testing.T) {
	store := NewStore([]entities.Campaign{{
		CampaignID: "camp_1",
		CreatorID:  "user_1",
		Title:      "Community Garden",
		Revision:   2,
	}})

	milestones := []entities.Milestone{{MilestoneID: "ms_1", Title: "Break ground", TargetAmount: 50}}

	err := store.ReplaceMilestones(context.Background(), "camp_1", milestones, 1)
	if !errors.Is(err, domainerrors.ErrRevisionConflict) {
		t.Fatalf("stale revision err = %v", err)
	}

	if err := store.ReplaceMilestones(context.Background(), "camp_1", milestones, 2); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	campaign, err := store.GetCampaign(context.Background(), "camp_1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if campaign.Revision != 3 {
		t.Fatalf("revision = %d, want 3", campaign.Revision)
	}
	if len(campaign.Milestones) != 1 || campaign.Milestones[0].MilestoneID != "ms_1" {
		t.Fatalf("milestones = %+v", campaign.Milestones)
	}
}

func TestReplaceMilestonesUnknownCampaign(t *testing.T) {
	store := NewStore(nil)

	err := store.ReplaceMilestones(context.Background(), "missing", nil, 0)
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestReplaceMilestonesCopiesInput(t *testing.T) {
	store := NewStore([]entities.Campaign{{CampaignID: "camp_1", Title: "T", Revision: 0}})

	milestones := []entities.Milestone{{MilestoneID: "ms_1", Title: "Original"}}
	if err := store.ReplaceMilestones(context.Background(), "camp_1", milestones, 0); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	milestones[0].Title = "Mutated"

	campaign, _ := store.GetCampaign(context.Background(), "camp_1")
	if campaign.Milestones[0].Title != "Original" {
		t.Fatal("stored milestones must not alias the caller slice")
	}
}

func TestAddDonationUnknownCampaign(t *testing.T) {
	store := NewStore(nil)

	err := store.AddDonation(context.Background(), entities.Donation{
		DonationID: "don_1",
		CampaignID: "missing",
		Amount:     5,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("err = %v", err)
	}
}
