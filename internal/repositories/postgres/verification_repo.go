package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/gorm"
)

type VerificationRepository interface {
	Insert(ctx context.Context, v *models.Verification) error
	GetByID(ctx context.Context, id string) (*models.Verification, error)
	LatestByUser(ctx context.Context, userID string) (*models.Verification, error)
	ListPending(ctx context.Context, limit int) ([]models.Verification, error)
	Review(ctx context.Context, id string, status models.VerificationStatus, note, reviewedBy string, at time.Time) error
	CountByStatus(ctx context.Context, status models.VerificationStatus) (int64, error)
}

type verificationRepo struct {
	db *gorm.DB
}

func NewVerificationRepo(db *gorm.DB) VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Insert(ctx context.Context, v *models.Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *verificationRepo) GetByID(ctx context.Context, id string) (*models.Verification, error) {
	var row models.Verification
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *verificationRepo) LatestByUser(ctx context.Context, userID string) (*models.Verification, error) {
	var row models.Verification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *verificationRepo) ListPending(ctx context.Context, limit int) ([]models.Verification, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Verification
	err := r.db.WithContext(ctx).
		Where("status = ?", models.VerificationPending).
		Order("submitted_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *verificationRepo) Review(ctx context.Context, id string, status models.VerificationStatus, note, reviewedBy string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Verification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"review_note": note,
			"reviewed_by": reviewedBy,
			"reviewed_at": at,
		}).Error
}

func (r *verificationRepo) CountByStatus(ctx context.Context, status models.VerificationStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Verification{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
