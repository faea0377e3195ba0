package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"chainimpact/contexts/giving/campaign-service/domain/entities"
	domainerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	"chainimpact/contexts/giving/campaign-service/ports"
	"chainimpact/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
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

type campaignModel struct {
	CampaignID    string `gorm:"primaryKey;column:campaign_id"`
	CreatorID     string `gorm:"column:creator_id;index"`
	Title         string
	Description   string
	GoalAmount    float64
	CurrentAmount float64
	ImageURL      string `gorm:"column:image_url"`
	WalletAddress string
	Status        string
	Milestones    datatypes.JSON
	Revision      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (campaignModel) TableName() string { return "campaigns" }

type donationModel struct {
	DonationID    string `gorm:"primaryKey;column:donation_id"`
	CampaignID    string `gorm:"column:campaign_id;index"`
	CampaignTitle string
	DonorID       string `gorm:"column:donor_id;index"`
	Amount        float64
	TxSignature   string `gorm:"column:tx_signature"`
	Timestamp     time.Time
}

func (donationModel) TableName() string { return "donations" }

type idempotencyModel struct {
	Key             string `gorm:"primaryKey;column:idempotency_key"`
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

func (idempotencyModel) TableName() string { return "campaign_idempotency_records" }

type outboxModel struct {
	OutboxID    string `gorm:"primaryKey;column:outbox_id"`
	EventType   string
	EntityID    string `gorm:"column:entity_id"`
	Payload     []byte
	Status      string `gorm:"index"`
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func (outboxModel) TableName() string { return "campaign_outbox" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&campaignModel{}, &donationModel{}, &idempotencyModel{}, &outboxModel{})
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	query := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.CreatorID) != "" {
		query = query.Where("creator_id = ?", strings.TrimSpace(filter.CreatorID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []campaignModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ReplaceMilestones(
	ctx context.Context,
	campaignID string,
	milestones []entities.Milestone,
	expectedRevision int64,
) error {
	raw, err := json.Marshal(milestones)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ? AND revision = ?", strings.TrimSpace(campaignID), expectedRevision).
		Updates(map[string]any{
			"milestones": datatypes.JSON(raw),
			"revision":   gorm.Expr("revision + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&campaignModel{}).
			Where("campaign_id = ?", strings.TrimSpace(campaignID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrCampaignNotFound
		}
		return domainerrors.ErrRevisionConflict
	}
	return nil
}

func (r *Repository) AddToRaisedAmount(ctx context.Context, campaignID string, amount float64) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Update("current_amount", gorm.Expr("current_amount + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) AddDonation(ctx context.Context, donation entities.Donation) error {
	row := donationModel{
		DonationID:    donation.DonationID,
		CampaignID:    donation.CampaignID,
		CampaignTitle: donation.CampaignTitle,
		DonorID:       donation.DonorID,
		Amount:        donation.Amount,
		TxSignature:   donation.TxSignature,
		Timestamp:     donation.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) ListDonationsByCampaign(ctx context.Context, campaignID string) ([]entities.Donation, error) {
	var rows []donationModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("timestamp DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Donation, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Donation{
			DonationID:    row.DonationID,
			CampaignID:    row.CampaignID,
			CampaignTitle: row.CampaignTitle,
			DonorID:       row.DonorID,
			Amount:        row.Amount,
			TxSignature:   row.TxSignature,
			Timestamp:     row.Timestamp,
		})
	}
	return items, nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ? AND expires_at > ?", key, now).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}
	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: row.ResponsePayload,
		ExpiresAt:       row.ExpiresAt,
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             record.Key,
		RequestHash:     record.RequestHash,
		ResponsePayload: record.ResponsePayload,
		ExpiresAt:       record.ExpiresAt,
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  envelope.EventID,
		EventType: envelope.EventType,
		EntityID:  envelope.EntityID,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: envelope.OccurredAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			OutboxID:    row.OutboxID,
			EventType:   row.EventType,
			EntityID:    row.EntityID,
			Payload:     row.Payload,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
			PublishedAt: row.PublishedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func campaignModelFromEntity(campaign entities.Campaign) (campaignModel, error) {
	milestones, err := json.Marshal(campaign.Milestones)
	if err != nil {
		return campaignModel{}, err
	}
	return campaignModel{
		CampaignID:    campaign.CampaignID,
		CreatorID:     campaign.CreatorID,
		Title:         campaign.Title,
		Description:   campaign.Description,
		GoalAmount:    campaign.GoalAmount,
		CurrentAmount: campaign.CurrentAmount,
		ImageURL:      campaign.ImageURL,
		WalletAddress: campaign.WalletAddress,
		Status:        string(campaign.Status),
		Milestones:    datatypes.JSON(milestones),
		Revision:      campaign.Revision,
		CreatedAt:     campaign.CreatedAt,
		UpdatedAt:     campaign.UpdatedAt,
	}, nil
}

func (m campaignModel) toEntity() (entities.Campaign, error) {
	var milestones []entities.Milestone
	if len(m.Milestones) > 0 {
		if err := json.Unmarshal(m.Milestones, &milestones); err != nil {
			return entities.Campaign{}, err
		}
	}
	return entities.Campaign{
		CampaignID:    m.CampaignID,
		CreatorID:     m.CreatorID,
		Title:         m.Title,
		Description:   m.Description,
		GoalAmount:    m.GoalAmount,
		CurrentAmount: m.CurrentAmount,
		ImageURL:      m.ImageURL,
		WalletAddress: m.WalletAddress,
		Status:        entities.CampaignStatus(m.Status),
		Milestones:    milestones,
		Revision:      m.Revision,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
