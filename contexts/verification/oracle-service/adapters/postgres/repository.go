package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"chainimpact/contexts/verification/oracle-service/domain/entities"
	domainerrors "chainimpact/contexts/verification/oracle-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the verifier registry.
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

type verifierModel struct {
	VerifierID    string `gorm:"primaryKey;column:verifier_id"`
	WalletAddress string `gorm:"column:wallet_address;uniqueIndex"`
	RegisteredAt  time.Time
}

func (verifierModel) TableName() string { return "oracle_verifiers" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&verifierModel{})
}

func (r *Repository) SaveVerifier(ctx context.Context, registration entities.VerifierRegistration) error {
	model := verifierModel{
		VerifierID:    registration.VerifierID,
		WalletAddress: registration.WalletAddress,
		RegisteredAt:  registration.RegisteredAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{"registered_at"}),
		}).
		Create(&model).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		r.logger.ErrorContext(ctx, "verifier save failed",
			slog.String("event", "verifier_save_failed"),
			slog.String("verifier_id", registration.VerifierID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (r *Repository) GetVerifier(ctx context.Context, verifierID string) (entities.VerifierRegistration, error) {
	var model verifierModel
	err := r.db.WithContext(ctx).
		First(&model, "verifier_id = ?", strings.TrimSpace(verifierID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VerifierRegistration{}, domainerrors.ErrVerifierNotFound
		}
		return entities.VerifierRegistration{}, err
	}
	return entities.VerifierRegistration{
		VerifierID:    model.VerifierID,
		WalletAddress: model.WalletAddress,
		RegisteredAt:  model.RegisteredAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
