package services

import (
	"context"
	"errors"
	"time"

	"github.com/roomsathi/roomsathi/internal/cache"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(userID string) string { return "profile:" + userID }

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	cache    cache.Cache
}

func NewProfileService(profiles pgrepo.ProfileRepository, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, cache: c}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	return s.get(ctx, op, userID)
}

// Get is the public-profile read other users (and the ranking path) use.
func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	return s.get(ctx, op, userID)
}

func (s *profileService) get(ctx context.Context, op, userID string) (*models.Profile, error) {
	if s.cache != nil {
		var cached models.Profile
		if hit, _ := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.Profile) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.user_id is required", nil)
	}
	if p.ProfileType != "" && p.ProfileType != models.ProfileStudent && p.ProfileType != models.ProfileProfessional {
		return utils.E(utils.CodeInvalidArgument, op, "profile_type must be student or professional", nil)
	}
	// registration flow fills at most one of these
	if p.ProfileType == models.ProfileStudent {
		p.Company = ""
	}
	if p.ProfileType == models.ProfileProfessional {
		p.College = ""
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, profileCacheKey(p.UserID))
	}
	return nil
}
