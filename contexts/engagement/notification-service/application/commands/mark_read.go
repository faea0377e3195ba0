package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chainimpact/contexts/engagement/notification-service/application"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	"chainimpact/contexts/engagement/notification-service/ports"
)

type MarkReadUseCase struct {
	Notifications ports.NotificationRepository
	Logger        *slog.Logger
}

func (uc MarkReadUseCase) Execute(ctx context.Context, notificationID string) error {
	if strings.TrimSpace(notificationID) == "" {
		return domainerrors.ErrNotificationNotFound
	}
	return uc.Notifications.MarkRead(ctx, strings.TrimSpace(notificationID))
}

type MarkAllReadUseCase struct {
	Notifications ports.NotificationRepository
	Logger        *slog.Logger
}

func (uc MarkAllReadUseCase) Execute(ctx context.Context, recipientID string) (int64, error) {
	logger := application.ResolveLogger(uc.Logger)

	recipient := strings.TrimSpace(recipientID)
	if recipient == "" {
		return 0, domainerrors.ErrRecipientRequired
	}

	updated, err := uc.Notifications.MarkAllRead(ctx, recipient)
	if err != nil {
		return 0, err
	}
	logger.Info("notifications marked read",
		"event", "notifications_marked_read",
		"module", "engagement/notification-service",
		"layer", "application",
		"recipient_id", recipient,
		"updated", updated,
	)
	return updated, nil
}
