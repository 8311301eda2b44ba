package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/cache"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
)

const ratingCacheTTL = 10 * time.Minute

func ratingCacheKey(userID string) string { return "rating:summary:" + userID }

type RatingService interface {
	Rate(ctx context.Context, raterID, ratedID string, stars int, comment string) error
	Summary(ctx context.Context, userID string) (*models.RatingSummary, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Rating, error)
}

type ratingService struct {
	ratings pgrepo.RatingRepository
	cache   cache.Cache
}

func NewRatingService(ratings pgrepo.RatingRepository, c cache.Cache) RatingService {
	return &ratingService{ratings: ratings, cache: c}
}

func (s *ratingService) Rate(ctx context.Context, raterID, ratedID string, stars int, comment string) error {
	const op = "RatingService.Rate"

	if raterID == "" || ratedID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "rater and rated user are required", nil)
	}
	if raterID == ratedID {
		return utils.E(utils.CodeInvalidArgument, op, "cannot rate yourself", nil)
	}
	if stars < 1 || stars > 5 {
		return utils.E(utils.CodeInvalidArgument, op, "stars must be between 1 and 5", nil)
	}

	now := time.Now().UTC()
	rt := &models.Rating{
		ID:        uuid.NewString(),
		RaterID:   raterID,
		RatedID:   ratedID,
		Stars:     stars,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ratings.Upsert(ctx, rt); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save rating", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, ratingCacheKey(ratedID))
	}
	return nil
}

func (s *ratingService) Summary(ctx context.Context, userID string) (*models.RatingSummary, error) {
	const op = "RatingService.Summary"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.RatingSummary
		if hit, _ := s.cache.GetJSON(ctx, ratingCacheKey(userID), &cached); hit {
			return &cached, nil
		}
	}

	summary, err := s.ratings.SummaryFor(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to compute summary", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, ratingCacheKey(userID), summary, ratingCacheTTL)
	}
	return summary, nil
}

func (s *ratingService) ListForUser(ctx context.Context, userID string, limit int) ([]models.Rating, error) {
	const op = "RatingService.ListForUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.ratings.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list ratings", err)
	}
	return rows, nil
}
