package services

import (
	"context"

	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
)

// DashboardStats backs the admin overview page.
type DashboardStats struct {
	Profiles             int64 `json:"profiles"`
	OpenListings         int64 `json:"open_listings"`
	OpenRequests         int64 `json:"open_requests"`
	OpenReports          int64 `json:"open_reports"`
	PendingVerifications int64 `json:"pending_verifications"`
}

type AdminService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	ForceExpireListing(ctx context.Context, listingID string) error
}

type adminService struct {
	profiles      pgrepo.ProfileRepository
	listings      pgrepo.ListingRepository
	requests      pgrepo.RequestRepository
	reports       pgrepo.ReportRepository
	verifications pgrepo.VerificationRepository
}

func NewAdminService(profiles pgrepo.ProfileRepository, listings pgrepo.ListingRepository, requests pgrepo.RequestRepository, reports pgrepo.ReportRepository, verifications pgrepo.VerificationRepository) AdminService {
	return &adminService{
		profiles:      profiles,
		listings:      listings,
		requests:      requests,
		reports:       reports,
		verifications: verifications,
	}
}

func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	const op = "AdminService.Stats"

	out := &DashboardStats{}
	var err error

	if out.Profiles, err = s.profiles.Count(ctx); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count profiles", err)
	}
	if out.OpenListings, err = s.listings.CountByStatus(ctx, models.ListingOpen); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count listings", err)
	}
	if out.OpenRequests, err = s.requests.CountByStatus(ctx, models.RequestOpen); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count requests", err)
	}
	if out.OpenReports, err = s.reports.CountByStatus(ctx, models.ReportOpen); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count reports", err)
	}
	if out.PendingVerifications, err = s.verifications.CountByStatus(ctx, models.VerificationPending); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count verifications", err)
	}
	return out, nil
}

func (s *adminService) ForceExpireListing(ctx context.Context, listingID string) error {
	const op = "AdminService.ForceExpireListing"

	if listingID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "listing id is required", nil)
	}
	if err := s.listings.SetStatus(ctx, listingID, models.ListingExpired); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to expire listing", err)
	}
	return nil
}
