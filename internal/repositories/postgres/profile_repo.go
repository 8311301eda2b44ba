package postgres

import (
	"context"
	"errors"

	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	SetCoordinates(ctx context.Context, userID string, lat, lon float64) error
	SetVerified(ctx context.Context, userID string, verified bool) error
	Count(ctx context.Context) (int64, error)
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

// GetByUserIDs is the batch lookup the ranking path uses to resolve poster
// hints without one query per candidate.
func (r *profileRepo) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone_number", "bio", "photo_url", "city", "home_district", "college", "company", "gender", "profile_type", "languages", "preferences", "latitude", "longitude", "updated_at"}),
		}).
		Create(p).Error
}

func (r *profileRepo) SetCoordinates(ctx context.Context, userID string, lat, lon float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"latitude": lat, "longitude": lon}).Error
}

func (r *profileRepo) SetVerified(ctx context.Context, userID string, verified bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("verified", verified).Error
}

func (r *profileRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&n).Error
	return n, err
}
