package ports

import (
	"context"
	"time"

	"chainimpact/contexts/engagement/notification-service/domain/entities"
)

type NotificationRepository interface {
	AppendNotification(ctx context.Context, notification entities.Notification) error
	GetNotification(ctx context.Context, notificationID string) (entities.Notification, error)
	ListNotifications(ctx context.Context, query ListQuery) ([]entities.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

// ListQuery filters a recipient's notifications, newest first.
type ListQuery struct {
	RecipientID string
	UnreadOnly  bool
	Limit       int
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
