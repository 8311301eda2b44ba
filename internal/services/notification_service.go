package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	mongorepo "github.com/roomsathi/roomsathi/internal/repositories/mongo"
	"github.com/roomsathi/roomsathi/internal/utils"
	"github.com/sirupsen/logrus"
)

type NotificationService interface {
	// Push is best effort: a lost notification never fails the caller's
	// operation.
	Push(ctx context.Context, userID string, typ models.NotificationType, title, body string, payload map[string]string)
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifications mongorepo.NotificationRepository
	log           *logrus.Logger
}

func NewNotificationService(notifications mongorepo.NotificationRepository, log *logrus.Logger) NotificationService {
	return &notificationService{notifications: notifications, log: log}
}

func (s *notificationService) Push(ctx context.Context, userID string, typ models.NotificationType, title, body string, payload map[string]string) {
	if userID == "" {
		return
	}

	n := &models.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Body:           body,
		Payload:        payload,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to store notification")
	}
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	const op = "NotificationService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list notifications", err)
	}
	return rows, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	const op = "NotificationService.UnreadCount"

	if userID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	n, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to count notifications", err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	const op = "NotificationService.MarkRead"

	if userID == "" || notificationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and notification_id are required", nil)
	}
	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to mark read", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	const op = "NotificationService.MarkAllRead"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to mark all read", err)
	}
	return nil
}
