package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Insert(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Update(ctx context.Context, l *models.Listing) error
	ListOpenByCity(ctx context.Context, city string, limit int) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	SetStatus(ctx context.Context, id string, status models.ListingStatus) error
	SetCoordinates(ctx context.Context, id string, lat, lon float64) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, status models.ListingStatus) (int64, error)
}

type listingRepo struct {
	db *gorm.DB
}

func NewListingRepo(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Insert(ctx context.Context, l *models.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var row models.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *listingRepo) Update(ctx context.Context, l *models.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *listingRepo) ListOpenByCity(ctx context.Context, city string, limit int) ([]models.Listing, error) {
	if limit <= 0 {
		limit = 100
	}

	q := r.db.WithContext(ctx).
		Where("status = ?", models.ListingOpen)
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	var rows []models.Listing
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *listingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	var rows []models.Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *listingRepo) SetStatus(ctx context.Context, id string, status models.ListingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepo) SetCoordinates(ctx context.Context, id string, lat, lon float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Updates(map[string]any{"latitude": lat, "longitude": lon}).Error
}

// ExpireOverdue flips open listings whose expiry has passed. Returns the
// number of rows changed.
func (r *listingRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("status = ? AND expires_at < ?", models.ListingOpen, now).
		Update("status", models.ListingExpired)
	return res.RowsAffected, res.Error
}

func (r *listingRepo) CountByStatus(ctx context.Context, status models.ListingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
