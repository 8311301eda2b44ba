package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Insert(ctx context.Context, rep *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	ListByStatus(ctx context.Context, status models.ReportStatus, limit int) ([]models.Report, error)
	Resolve(ctx context.Context, id string, status models.ReportStatus, resolution, resolvedBy string, at time.Time) error
	CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Insert(ctx context.Context, rep *models.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var row models.Report
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *reportRepo) ListByStatus(ctx context.Context, status models.ReportStatus, limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Report
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *reportRepo) Resolve(ctx context.Context, id string, status models.ReportStatus, resolution, resolvedBy string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"resolution":  resolution,
			"resolved_by": resolvedBy,
			"resolved_at": at,
		}).Error
}

func (r *reportRepo) CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
