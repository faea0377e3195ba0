package commands

import (
	"context"
	"errors"
	"testing"

	"chainimpact/contexts/engagement/notification-service/adapters/memory"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
)

func newAppend(store *memory.Store) AppendNotificationUseCase {
	return AppendNotificationUseCase{
		Notifications: store,
		Clock:         store,
		IDGenerator:   store,
	}
}

func TestAppendNotification(t *testing.T) {
	store := memory.NewStore(nil)
	index := 2

	notification, err := newAppend(store).Execute(context.Background(), AppendNotificationCommand{
		RecipientID:    "user_1",
		Type:           entities.NotificationTypeMilestone,
		Message:        "Milestone \"Drill first well\" has been verified!",
		CampaignID:     "camp_1",
		MilestoneIndex: &index,
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if notification.Read {
		t.Fatal("new notifications start unread")
	}
	if notification.MilestoneIndex == nil || *notification.MilestoneIndex != 2 {
		t.Fatalf("milestone index = %v", notification.MilestoneIndex)
	}

	stored, err := store.GetNotification(context.Background(), notification.NotificationID)
	if err != nil {
		t.Fatalf("stored lookup failed: %v", err)
	}
	if stored.RecipientID != "user_1" {
		t.Fatalf("recipient = %q", stored.RecipientID)
	}
}

func TestAppendNotificationRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newAppend(store)

	cases := []AppendNotificationCommand{
		{RecipientID: "", Type: entities.NotificationTypeSystem, Message: "m"},
		{RecipientID: "user_1", Type: entities.NotificationTypeSystem, Message: "   "},
		{RecipientID: "user_1", Type: "broadcast", Message: "m"},
	}
	for i, cmd := range cases {
		if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidNotificationInput) {
			t.Fatalf("case %d: err = %v", i, err)
		}
	}
}

func TestMarkRead(t *testing.T) {
	store := memory.NewStore(nil)
	notification, err := newAppend(store).Execute(context.Background(), AppendNotificationCommand{
		RecipientID: "user_1",
		Type:        entities.NotificationTypeDonation,
		Message:     "You received a donation.",
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	uc := MarkReadUseCase{Notifications: store}
	if err := uc.Execute(context.Background(), notification.NotificationID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	stored, _ := store.GetNotification(context.Background(), notification.NotificationID)
	if !stored.Read {
		t.Fatal("notification should be read")
	}

	if err := uc.Execute(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrNotificationNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	store := memory.NewStore(nil)
	appendUC := newAppend(store)
	for i := 0; i < 3; i++ {
		if _, err := appendUC.Execute(context.Background(), AppendNotificationCommand{
			RecipientID: "user_1",
			Type:        entities.NotificationTypeSystem,
			Message:     "update",
		}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if _, err := appendUC.Execute(context.Background(), AppendNotificationCommand{
		RecipientID: "user_2",
		Type:        entities.NotificationTypeSystem,
		Message:     "other user",
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	uc := MarkAllReadUseCase{Notifications: store}
	updated, err := uc.Execute(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("mark all failed: %v", err)
	}
	if updated != 3 {
		t.Fatalf("updated = %d, want 3", updated)
	}

	again, err := uc.Execute(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("second mark all failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("second run updated = %d, want 0", again)
	}

	if _, err := uc.Execute(context.Background(), "  "); !errors.Is(err, domainerrors.ErrRecipientRequired) {
		t.Fatalf("err = %v", err)
	}
}
