package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
	"github.com/jmcalloway/insuquote-backend/pkg/pagination"
)

const notFoundMessage = "notification not found"

// Service exposes notification operations. Notify is the fire-and-forget
// producer side; the rest serves the bell UI.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (PageDTO, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Notification, int64, string, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
}

// ServiceParams groups dependencies for the notifications service.
type ServiceParams struct {
	Repo   notificationRepository
	Logger *logger.Logger
}

type service struct {
	repo notificationRepository
	logg *logger.Logger
}

// NewService builds a notifications service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

// Notify persists a notification row. Failures are logged and swallowed so a
// broken bell never fails the operation that produced it.
func (s *service) Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string) {
	if userID == uuid.Nil || !kind.IsValid() {
		return
	}

	_, err := s.repo.Create(ctx, &models.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
	})
	if err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithField(ctx, "notification_type", kind.String()), "persisting notification", err)
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (PageDTO, error) {
	if userID == uuid.Nil {
		return PageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, unread, nextCursor, err := s.repo.List(ctx, userID, params)
	if err != nil {
		classified := pkgdb.Classify(err, "list notifications")
		if pkgdb.IsSchemaAbsent(classified) {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "table", "notifications"), "schema absent; degrading to empty result")
			}
			return PageDTO{Items: []NotificationDTO{}}, nil
		}
		return PageDTO{}, classified
	}

	items := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		items = append(items, fromModel(&rows[i]))
	}
	return PageDTO{Items: items, UnreadCount: unread, NextCursor: nextCursor}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil || id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and notification id are required")
	}

	affected, err := s.repo.MarkRead(ctx, userID, id, time.Now().UTC())
	if err != nil {
		return pkgdb.Classify(err, "mark notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	affected, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgdb.Classify(err, "mark notifications read")
	}
	return affected, nil
}
