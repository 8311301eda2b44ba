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

type ReportService interface {
	File(ctx context.Context, reporterID string, target models.ReportTarget, targetID, reason string) (*models.Report, error)
	ListOpen(ctx context.Context, limit int) ([]models.Report, error)
	Resolve(ctx context.Context, adminID, reportID string, status models.ReportStatus, resolution string) error
}

type reportService struct {
	reports  pgrepo.ReportRepository
	listings pgrepo.ListingRepository
	notify   NotificationService
}

func NewReportService(reports pgrepo.ReportRepository, listings pgrepo.ListingRepository, notify NotificationService) ReportService {
	return &reportService{reports: reports, listings: listings, notify: notify}
}

func (s *reportService) File(ctx context.Context, reporterID string, target models.ReportTarget, targetID, reason string) (*models.Report, error) {
	const op = "ReportService.File"

	if reporterID == "" || targetID == "" || reason == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "reporter, target and reason are required", nil)
	}
	switch target {
	case models.ReportTargetUser, models.ReportTargetListing, models.ReportTargetRequest:
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid target type", nil)
	}

	rep := &models.Report{
		ID:         uuid.NewString(),
		ReporterID: reporterID,
		TargetType: target,
		TargetID:   targetID,
		Reason:     reason,
		Status:     models.ReportOpen,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reports.Insert(ctx, rep); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to file report", err)
	}
	return rep, nil
}

func (s *reportService) ListOpen(ctx context.Context, limit int) ([]models.Report, error) {
	const op = "ReportService.ListOpen"

	rows, err := s.reports.ListByStatus(ctx, models.ReportOpen, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reports", err)
	}
	return rows, nil
}

// Resolve closes a report. Resolving a listing report also takes the listing
// down; dismissing leaves the target untouched.
func (s *reportService) Resolve(ctx context.Context, adminID, reportID string, status models.ReportStatus, resolution string) error {
	const op = "ReportService.Resolve"

	if status != models.ReportResolved && status != models.ReportDismissed {
		return utils.E(utils.CodeInvalidArgument, op, "status must be resolved or dismissed", nil)
	}

	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "report not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get report", err)
	}
	if rep.Status != models.ReportOpen {
		return utils.E(utils.CodeConflict, op, "report already handled", nil)
	}

	if err := s.reports.Resolve(ctx, reportID, status, resolution, adminID, time.Now().UTC()); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to resolve report", err)
	}

	if status == models.ReportResolved && rep.TargetType == models.ReportTargetListing {
		if err := s.listings.SetStatus(ctx, rep.TargetID, models.ListingRemoved); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to remove reported listing", err)
		}
	}

	if s.notify != nil {
		s.notify.Push(ctx, rep.ReporterID, models.NotifyModeration, "Report reviewed", resolution,
			map[string]string{"report_id": rep.ID})
	}
	return nil
}
