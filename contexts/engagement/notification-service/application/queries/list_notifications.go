package queries

import (
	"context"
	"log/slog"
	"strings"

	"chainimpact/contexts/engagement/notification-service/domain/entities"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	"chainimpact/contexts/engagement/notification-service/ports"
)

const defaultListLimit = 50

type ListNotificationsQuery struct {
	RecipientID string
	UnreadOnly  bool
	Limit       int
}

type ListNotificationsUseCase struct {
	Notifications ports.NotificationRepository
	Logger        *slog.Logger
}

func (uc ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) ([]entities.Notification, error) {
	recipient := strings.TrimSpace(query.RecipientID)
	if recipient == "" {
		return nil, domainerrors.ErrRecipientRequired
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return uc.Notifications.ListNotifications(ctx, ports.ListQuery{
		RecipientID: recipient,
		UnreadOnly:  query.UnreadOnly,
		Limit:       limit,
	})
}
