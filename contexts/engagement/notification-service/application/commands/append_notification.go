package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chainimpact/contexts/engagement/notification-service/application"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	"chainimpact/contexts/engagement/notification-service/ports"
)

type AppendNotificationCommand struct {
	RecipientID    string
	Type           entities.NotificationType
	Message        string
	CampaignID     string
	MilestoneIndex *int
}

type AppendNotificationUseCase struct {
	Notifications ports.NotificationRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (uc AppendNotificationUseCase) Execute(ctx context.Context, cmd AppendNotificationCommand) (entities.Notification, error) {
	logger := application.ResolveLogger(uc.Logger)

	id, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Notification{}, err
	}

	notification := entities.Notification{
		NotificationID: id,
		RecipientID:    strings.TrimSpace(cmd.RecipientID),
		Type:           cmd.Type,
		Message:        strings.TrimSpace(cmd.Message),
		Read:           false,
		CampaignID:     strings.TrimSpace(cmd.CampaignID),
		MilestoneIndex: cmd.MilestoneIndex,
		Timestamp:      uc.Clock.Now().UTC(),
	}
	if !notification.ValidateBasics() {
		return entities.Notification{}, domainerrors.ErrInvalidNotificationInput
	}

	if err := uc.Notifications.AppendNotification(ctx, notification); err != nil {
		return entities.Notification{}, err
	}

	logger.Info("notification appended",
		"event", "notification_appended",
		"module", "engagement/notification-service",
		"layer", "application",
		"notification_id", notification.NotificationID,
		"recipient_id", notification.RecipientID,
		"type", string(notification.Type),
	)
	return notification, nil
}
