package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"chainimpact/contexts/engagement/notification-service/domain/entities"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	"chainimpact/contexts/engagement/notification-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type notificationModel struct {
	NotificationID string `gorm:"primaryKey;column:notification_id"`
	RecipientID    string `gorm:"column:recipient_id;index"`
	Type           string
	Message        string
	Read           bool `gorm:"index"`
	CampaignID     string `gorm:"column:campaign_id"`
	MilestoneIndex *int   `gorm:"column:milestone_index"`
	Timestamp      time.Time
}

func (notificationModel) TableName() string { return "notifications" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&notificationModel{})
}

func (r *Repository) AppendNotification(ctx context.Context, notification entities.Notification) error {
	model := toModel(notification)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logger.ErrorContext(ctx, "notification insert failed",
			slog.String("event", "notification_insert_failed"),
			slog.String("notification_id", notification.NotificationID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (r *Repository) GetNotification(ctx context.Context, notificationID string) (entities.Notification, error) {
	var model notificationModel
	err := r.db.WithContext(ctx).
		First(&model, "notification_id = ?", strings.TrimSpace(notificationID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return fromModel(model), nil
}

func (r *Repository) ListNotifications(ctx context.Context, query ports.ListQuery) ([]entities.Notification, error) {
	tx := r.db.WithContext(ctx).
		Where("recipient_id = ?", query.RecipientID).
		Order("timestamp DESC")
	if query.UnreadOnly {
		tx = tx.Where("read = ?", false)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var models []notificationModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]entities.Notification, 0, len(models))
	for _, model := range models {
		result = append(result, fromModel(model))
	}
	return result, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string) error {
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ?", strings.TrimSpace(notificationID)).
		Update("read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func toModel(notification entities.Notification) notificationModel {
	return notificationModel{
		NotificationID: notification.NotificationID,
		RecipientID:    notification.RecipientID,
		Type:           string(notification.Type),
		Message:        notification.Message,
		Read:           notification.Read,
		CampaignID:     notification.CampaignID,
		MilestoneIndex: notification.MilestoneIndex,
		Timestamp:      notification.Timestamp,
	}
}

func fromModel(model notificationModel) entities.Notification {
	return entities.Notification{
		NotificationID: model.NotificationID,
		RecipientID:    model.RecipientID,
		Type:           entities.NotificationType(model.Type),
		Message:        model.Message,
		Read:           model.Read,
		CampaignID:     model.CampaignID,
		MilestoneIndex: model.MilestoneIndex,
		Timestamp:      model.Timestamp,
	}
}
