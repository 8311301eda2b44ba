package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
)

const defaultRequestLifetime = 30 * 24 * time.Hour

type RequestService interface {
	Create(ctx context.Context, rr *models.RoomRequest) (*models.RoomRequest, error)
	Get(ctx context.Context, id string) (*models.RoomRequest, error)
	Update(ctx context.Context, userID string, rr *models.RoomRequest) error
	ListOpen(ctx context.Context, city string, limit int) ([]models.RoomRequest, error)
	ListMine(ctx context.Context, userID string) ([]models.RoomRequest, error)
	SetStatus(ctx context.Context, userID, id string, status models.RequestStatus) error
}

type requestService struct {
	requests pgrepo.RequestRepository
}

func NewRequestService(requests pgrepo.RequestRepository) RequestService {
	return &requestService{requests: requests}
}

func (s *requestService) Create(ctx context.Context, rr *models.RoomRequest) (*models.RoomRequest, error) {
	const op = "RequestService.Create"

	if rr == nil || rr.OwnerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	if rr.City == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "city is required", nil)
	}
	if rr.BudgetMax > 0 && rr.BudgetMin > rr.BudgetMax {
		return nil, utils.E(utils.CodeInvalidArgument, op, "budget_min exceeds budget_max", nil)
	}

	now := time.Now().UTC()
	rr.ID = uuid.NewString()
	rr.Status = models.RequestOpen
	rr.CreatedAt = now
	rr.UpdatedAt = now
	if rr.ExpiresAt.IsZero() {
		rr.ExpiresAt = now.Add(defaultRequestLifetime)
	}

	if err := s.requests.Insert(ctx, rr); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create request", err)
	}
	return rr, nil
}

func (s *requestService) Get(ctx context.Context, id string) (*models.RoomRequest, error) {
	const op = "RequestService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "request id is required", nil)
	}

	rr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "request not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get request", err)
	}
	return rr, nil
}

func (s *requestService) Update(ctx context.Context, userID string, rr *models.RoomRequest) error {
	const op = "RequestService.Update"

	if rr == nil || rr.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "request id is required", nil)
	}

	existing, err := s.Get(ctx, rr.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return utils.E(utils.CodeForbidden, op, "not the request owner", nil)
	}

	rr.OwnerID = existing.OwnerID
	rr.CreatedAt = existing.CreatedAt
	rr.Status = existing.Status
	rr.UpdatedAt = time.Now().UTC()

	if err := s.requests.Update(ctx, rr); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update request", err)
	}
	return nil
}

func (s *requestService) ListOpen(ctx context.Context, city string, limit int) ([]models.RoomRequest, error) {
	const op = "RequestService.ListOpen"

	rows, err := s.requests.ListOpenByCity(ctx, city, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list requests", err)
	}
	return rows, nil
}

func (s *requestService) ListMine(ctx context.Context, userID string) ([]models.RoomRequest, error) {
	const op = "RequestService.ListMine"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.requests.ListByOwner(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list requests", err)
	}
	return rows, nil
}

func (s *requestService) SetStatus(ctx context.Context, userID, id string, status models.RequestStatus) error {
	const op = "RequestService.SetStatus"

	switch status {
	case models.RequestOpen, models.RequestMatched, models.RequestRemoved:
	default:
		return utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return utils.E(utils.CodeForbidden, op, "not the request owner", nil)
	}

	if err := s.requests.SetStatus(ctx, id, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	return nil
}
