package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/storage"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type VerificationService interface {
	Submit(ctx context.Context, userID, documentType, mimeType string, size int, doc io.Reader) (*models.Verification, error)
	Status(ctx context.Context, userID string) (*models.Verification, error)
	ListPending(ctx context.Context, limit int) ([]models.Verification, error)
	Review(ctx context.Context, adminID, verificationID string, approve bool, note string) error
	DocumentURL(ctx context.Context, verificationID string) (string, error)
}

type verificationService struct {
	verifications pgrepo.VerificationRepository
	profiles      pgrepo.ProfileRepository
	uploader      storage.PrivateUploader
	signer        storage.Signer
	notify        NotificationService
}

func NewVerificationService(verifications pgrepo.VerificationRepository, profiles pgrepo.ProfileRepository, uploader storage.PrivateUploader, signer storage.Signer, notify NotificationService) VerificationService {
	return &verificationService{
		verifications: verifications,
		profiles:      profiles,
		uploader:      uploader,
		signer:        signer,
		notify:        notify,
	}
}

func (s *verificationService) Submit(ctx context.Context, userID, documentType, mimeType string, size int, doc io.Reader) (*models.Verification, error) {
	const op = "VerificationService.Submit"

	if userID == "" || documentType == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and document_type are required", nil)
	}

	// a pending submission blocks another one
	if existing, err := s.verifications.LatestByUser(ctx, userID); err == nil &&
		existing.Status == models.VerificationPending {
		return nil, utils.E(utils.CodeConflict, op, "verification already pending", nil)
	}

	// DocumentPath keeps the object name, not a public URL; admins fetch
	// documents through signed links only.
	objectName := "verifications/" + userID + "/" + uuid.NewString()
	if err := s.uploader.UploadPrivate(ctx, objectName, mimeType, doc); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store document", err)
	}

	v := &models.Verification{
		ID:           uuid.NewString(),
		UserID:       userID,
		DocumentType: documentType,
		DocumentPath: objectName,
		FileSize:     size,
		MimeType:     mimeType,
		Status:       models.VerificationPending,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.verifications.Insert(ctx, v); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record verification", err)
	}
	return v, nil
}

func (s *verificationService) Status(ctx context.Context, userID string) (*models.Verification, error) {
	const op = "VerificationService.Status"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	v, err := s.verifications.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no verification submitted", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get verification", err)
	}
	return v, nil
}

func (s *verificationService) ListPending(ctx context.Context, limit int) ([]models.Verification, error) {
	const op = "VerificationService.ListPending"

	rows, err := s.verifications.ListPending(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list verifications", err)
	}
	return rows, nil
}

func (s *verificationService) DocumentURL(ctx context.Context, verificationID string) (string, error) {
	const op = "VerificationService.DocumentURL"

	v, err := s.verifications.GetByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "verification not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to get verification", err)
	}
	if s.signer == nil {
		return "", utils.E(utils.CodeUnavailable, op, "document signing not configured", nil)
	}

	url, err := s.signer.SignedGetURL(ctx, v.DocumentPath, 15*time.Minute)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to sign document url", err)
	}
	return url, nil
}

func (s *verificationService) Review(ctx context.Context, adminID, verificationID string, approve bool, note string) error {
	const op = "VerificationService.Review"

	v, err := s.verifications.GetByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "verification not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get verification", err)
	}
	if v.Status != models.VerificationPending {
		return utils.E(utils.CodeConflict, op, "verification already reviewed", nil)
	}

	status := models.VerificationRejected
	title := "Verification rejected"
	if approve {
		status = models.VerificationApproved
		title = "Verification approved"
	}

	if err := s.verifications.Review(ctx, verificationID, status, note, adminID, time.Now().UTC()); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to review verification", err)
	}
	if err := s.profiles.SetVerified(ctx, v.UserID, approve); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to flag profile", err)
	}

	if s.notify != nil {
		s.notify.Push(ctx, v.UserID, models.NotifyVerification, title, note,
			map[string]string{"verification_id": v.ID})
	}
	return nil
}
