package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"chainimpact/contexts/engagement/notification-service/application/commands"
	"chainimpact/contexts/engagement/notification-service/application/queries"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	httptransport "chainimpact/contexts/engagement/notification-service/transport/http"
)

type Handler struct {
	ListNotifications queries.ListNotificationsUseCase
	MarkRead          commands.MarkReadUseCase
	MarkAllRead       commands.MarkAllReadUseCase
	Logger            *slog.Logger
}

func (h Handler) ListNotificationsHandler(
	ctx context.Context,
	recipientID string,
	unreadOnly bool,
	limit int,
) (httptransport.ListNotificationsResponse, error) {
	items, err := h.ListNotifications.Execute(ctx, queries.ListNotificationsQuery{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Limit:       limit,
	})
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	result := make([]httptransport.NotificationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapNotification(item))
	}
	return httptransport.ListNotificationsResponse{Items: result}, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, notificationID string) error {
	return h.MarkRead.Execute(ctx, notificationID)
}

func (h Handler) MarkAllReadHandler(ctx context.Context, recipientID string) (httptransport.MarkAllReadResponse, error) {
	updated, err := h.MarkAllRead.Execute(ctx, recipientID)
	if err != nil {
		return httptransport.MarkAllReadResponse{}, err
	}
	return httptransport.MarkAllReadResponse{Updated: updated}, nil
}

func mapNotification(notification entities.Notification) httptransport.NotificationDTO {
	return httptransport.NotificationDTO{
		NotificationID: notification.NotificationID,
		RecipientID:    notification.RecipientID,
		Type:           string(notification.Type),
		Message:        notification.Message,
		Read:           notification.Read,
		CampaignID:     notification.CampaignID,
		MilestoneIndex: notification.MilestoneIndex,
		Timestamp:      notification.Timestamp.UTC().Format(time.RFC3339),
	}
}
