package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Insert(ctx context.Context, rr *models.RoomRequest) error
	GetByID(ctx context.Context, id string) (*models.RoomRequest, error)
	Update(ctx context.Context, rr *models.RoomRequest) error
	ListOpenByCity(ctx context.Context, city string, limit int) ([]models.RoomRequest, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.RoomRequest, error)
	SetStatus(ctx context.Context, id string, status models.RequestStatus) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error)
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Insert(ctx context.Context, rr *models.RoomRequest) error {
	return r.db.WithContext(ctx).Create(rr).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*models.RoomRequest, error) {
	var row models.RoomRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *requestRepo) Update(ctx context.Context, rr *models.RoomRequest) error {
	return r.db.WithContext(ctx).Save(rr).Error
}

func (r *requestRepo) ListOpenByCity(ctx context.Context, city string, limit int) ([]models.RoomRequest, error) {
	if limit <= 0 {
		limit = 100
	}

	q := r.db.WithContext(ctx).
		Where("status = ?", models.RequestOpen)
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	var rows []models.RoomRequest
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *requestRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.RoomRequest, error) {
	var rows []models.RoomRequest
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *requestRepo) SetStatus(ctx context.Context, id string, status models.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.RoomRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *requestRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RoomRequest{}).
		Where("status = ? AND expires_at < ?", models.RequestOpen, now).
		Update("status", models.RequestExpired)
	return res.RowsAffected, res.Error
}

func (r *requestRepo) CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomRequest{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
