package workers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chainimpact/contexts/engagement/notification-service/adapters/memory"
	"chainimpact/contexts/engagement/notification-service/application/commands"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	"chainimpact/contexts/engagement/notification-service/ports"
	"chainimpact/internal/shared/events"
)

func listAll(recipientID string) ports.ListQuery {
	return ports.ListQuery{RecipientID: recipientID, Limit: 10}
}

// directBus delivers synchronously so tests need no polling.
type directBus struct {
	handlers map[string]func(context.Context, events.Envelope) error
}

func newDirectBus() *directBus {
	return &directBus{handlers: make(map[string]func(context.Context, events.Envelope) error)}
}

func (b *directBus) Subscribe(_ context.Context, topic string, _ string, handler func(context.Context, events.Envelope) error) error {
	b.handlers[topic] = handler
	return nil
}

func (b *directBus) publish(t *testing.T, topic string, payload map[string]any) {
	t.Helper()
	handler, ok := b.handlers[topic]
	if !ok {
		t.Fatalf("no subscriber on topic %q", topic)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	envelope := events.Envelope{
		EventID:    "evt_1",
		EventType:  topic,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}
	if err := handler(context.Background(), envelope); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func newConsumer(store *memory.Store) EventConsumer {
	return EventConsumer{
		Append: commands.AppendNotificationUseCase{
			Notifications: store,
			Clock:         store,
			IDGenerator:   store,
		},
	}
}

func TestConsumerCampaignCreated(t *testing.T) {
	store := memory.NewStore(nil)
	bus := newDirectBus()
	if err := newConsumer(store).Start(context.Background(), bus); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	bus.publish(t, "campaign.created", map[string]any{
		"campaign_id": "camp_1",
		"creator_id":  "user_creator",
		"title":       "Tree Planting",
	})

	items, err := store.ListNotifications(context.Background(), listAll("user_creator"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("notifications = %d", len(items))
	}
	if items[0].Type != entities.NotificationTypeSystem {
		t.Fatalf("type = %s", items[0].Type)
	}
	if items[0].CampaignID != "camp_1" {
		t.Fatalf("campaign id = %q", items[0].CampaignID)
	}
}

func TestConsumerDonationReceived(t *testing.T) {
	store := memory.NewStore(nil)
	bus := newDirectBus()
	if err := newConsumer(store).Start(context.Background(), bus); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	bus.publish(t, "donation.received", map[string]any{
		"campaign_id":    "camp_1",
		"campaign_title": "Tree Planting",
		"creator_id":     "user_creator",
		"donor_id":       "user_donor",
		"amount":         12.5,
	})

	items, err := store.ListNotifications(context.Background(), listAll("user_creator"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("notifications = %d", len(items))
	}
	if items[0].Type != entities.NotificationTypeDonation {
		t.Fatalf("type = %s", items[0].Type)
	}
}
