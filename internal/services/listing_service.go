package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
)

// GeocodeStream is the Redis stream the geocode worker pool consumes.
const GeocodeStream = "geocode:stream"

const defaultListingLifetime = 30 * 24 * time.Hour

type ListingService interface {
	Create(ctx context.Context, l *models.Listing) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	Update(ctx context.Context, userID string, l *models.Listing) error
	ListOpen(ctx context.Context, city string, limit int) ([]models.Listing, error)
	ListMine(ctx context.Context, userID string) ([]models.Listing, error)
	SetStatus(ctx context.Context, userID, id string, status models.ListingStatus) error
	AddPhoto(ctx context.Context, userID, id, photoURL string) (*models.Listing, error)
}

type listingService struct {
	listings pgrepo.ListingRepository
	redis    *redis.Client
}

func NewListingService(listings pgrepo.ListingRepository, rdb *redis.Client) ListingService {
	return &listingService{listings: listings, redis: rdb}
}

func (s *listingService) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	const op = "ListingService.Create"

	if l == nil || l.OwnerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	if l.Title == "" || l.City == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and city are required", nil)
	}
	if l.Rent < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "rent must not be negative", nil)
	}
	if l.GenderPreference == "" {
		l.GenderPreference = "any"
	}

	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.Status = models.ListingOpen
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.ExpiresAt.IsZero() {
		l.ExpiresAt = now.Add(defaultListingLifetime)
	}

	if err := s.listings.Insert(ctx, l); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create listing", err)
	}

	s.enqueueGeocode(ctx, l)
	return l, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	const op = "ListingService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "listing id is required", nil)
	}

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "listing not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get listing", err)
	}
	return l, nil
}

func (s *listingService) Update(ctx context.Context, userID string, l *models.Listing) error {
	const op = "ListingService.Update"

	if l == nil || l.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "listing id is required", nil)
	}

	existing, err := s.Get(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return utils.E(utils.CodeForbidden, op, "not the listing owner", nil)
	}

	addressChanged := l.Address != existing.Address
	l.OwnerID = existing.OwnerID
	l.CreatedAt = existing.CreatedAt
	l.Status = existing.Status
	l.UpdatedAt = time.Now().UTC()
	if addressChanged {
		// stale coordinates are worse than none
		l.Latitude = nil
		l.Longitude = nil
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update listing", err)
	}

	if addressChanged {
		s.enqueueGeocode(ctx, l)
	}
	return nil
}

func (s *listingService) ListOpen(ctx context.Context, city string, limit int) ([]models.Listing, error) {
	const op = "ListingService.ListOpen"

	rows, err := s.listings.ListOpenByCity(ctx, city, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list listings", err)
	}
	return rows, nil
}

func (s *listingService) ListMine(ctx context.Context, userID string) ([]models.Listing, error) {
	const op = "ListingService.ListMine"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.listings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list listings", err)
	}
	return rows, nil
}

func (s *listingService) SetStatus(ctx context.Context, userID, id string, status models.ListingStatus) error {
	const op = "ListingService.SetStatus"

	switch status {
	case models.ListingOpen, models.ListingRented, models.ListingRemoved:
	default:
		return utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return utils.E(utils.CodeForbidden, op, "not the listing owner", nil)
	}

	if err := s.listings.SetStatus(ctx, id, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	return nil
}

func (s *listingService) AddPhoto(ctx context.Context, userID, id, photoURL string) (*models.Listing, error) {
	const op = "ListingService.AddPhoto"

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "not the listing owner", nil)
	}

	existing.Photos = append(existing.Photos, photoURL)
	existing.UpdatedAt = time.Now().UTC()
	if err := s.listings.Update(ctx, existing); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save photo", err)
	}
	return existing, nil
}

// enqueueGeocode hands the address to the worker pool. Best effort: a lost
// job just means the listing stays without coordinates.
func (s *listingService) enqueueGeocode(ctx context.Context, l *models.Listing) {
	if s.redis == nil || l.Address == "" {
		return
	}
	_ = s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: GeocodeStream,
		Values: map[string]any{
			"listing_id": l.ID,
			"address":    l.Address,
		},
	}).Err()
}
