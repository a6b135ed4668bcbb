package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/logger"
)

type NotificationService interface {
	List(ctx context.Context, userID string) ([]dto.NotificationView, error)
	MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error)
	Delete(ctx context.Context, userID, id string) error
}

type notificationService struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, users: users}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]dto.NotificationView, error) {
	list, err := s.repo.FindForRecipient(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err)
	}

	ids := make([]string, 0, len(list))
	for _, n := range list {
		if n.RelatedUserID != "" {
			ids = append(ids, n.RelatedUserID)
		}
	}
	related, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal(err)
	}
	byID := make(map[string]domain.UserSummary, len(related))
	for i := range related {
		byID[related[i].ID] = related[i].Summary()
	}

	out := make([]dto.NotificationView, 0, len(list))
	for _, n := range list {
		view := dto.NotificationView{Notification: n}
		if u, ok := byID[n.RelatedUserID]; ok {
			view.RelatedUser = &u
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *notificationService) owned(ctx context.Context, userID, id string) (*domain.Notification, error) {
	n, err := s.repo.FindNotificationByID(ctx, id)
	if err != nil {
		return nil, storageErr(err, "Notification not found")
	}
	if n.RecipientID != userID {
		return nil, utils.Forbidden("Not authorized to access this notification")
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, n.ID); err != nil {
		return nil, storageErr(err, "Notification not found")
	}
	n.Read = true
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteNotification(ctx, n.ID); err != nil {
		return storageErr(err, "Notification not found")
	}
	return nil
}

// recordLogged stores an in-app notification and only logs a failure.
func recordLogged(ctx context.Context, repo repository.NotificationRepository, n *domain.Notification) {
	if err := repo.CreateNotification(ctx, n); err != nil {
		logger.FromContext(ctx).Warn("in-app notification failed",
			zap.String("type", n.Type),
			zap.String("recipient", n.RecipientID),
			zap.Error(err),
		)
	}
}
