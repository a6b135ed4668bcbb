package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	FindNotificationByID(ctx context.Context, id string) (*domain.Notification, error)
	FindForRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteForPost(ctx context.Context, postID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return wrap("create notification", r.db.WithContext(ctx).Create(n).Error)
}

func (r *notificationRepository) FindNotificationByID(ctx context.Context, id string) (*domain.Notification, error) {
	n := &domain.Notification{}
	if err := r.db.WithContext(ctx).First(n, "id = ?", id).Error; err != nil {
		return nil, wrap("find notification", err)
	}
	return n, nil
}

// FindForRecipient lists newest first.
func (r *notificationRepository) FindForRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	var list []domain.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&list).Error
	return list, wrap("list notifications", err)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return wrap("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteNotification(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Notification{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteForPost(ctx context.Context, postID string) error {
	err := r.db.WithContext(ctx).Delete(&domain.Notification{}, "related_post_id = ?", postID).Error
	return wrap("delete post notifications", err)
}
