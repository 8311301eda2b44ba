package postgres

import (
	"context"

	"github.com/roomsathi/roomsathi/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rt *models.Rating) error
	SummaryFor(ctx context.Context, userID string) (*models.RatingSummary, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Rating, error)
}

type ratingRepo struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Upsert(ctx context.Context, rt *models.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rater_id"}, {Name: "rated_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "comment", "updated_at"}),
		}).
		Create(rt).Error
}

func (r *ratingRepo) SummaryFor(ctx context.Context, userID string) (*models.RatingSummary, error) {
	var out struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(stars) AS average, COUNT(*) AS count").
		Where("rated_id = ?", userID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}

	s := &models.RatingSummary{UserID: userID, Count: out.Count}
	if out.Average != nil {
		s.Average = *out.Average
	}
	return s, nil
}

func (r *ratingRepo) ListForUser(ctx context.Context, userID string, limit int) ([]models.Rating, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Rating
	err := r.db.WithContext(ctx).
		Where("rated_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
