package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type MessageRepository interface {
	SaveMessage(ctx context.Context, msg *domain.Message) error
	// History returns every message exchanged between a and b, oldest first.
	// Argument order does not matter.
	History(ctx context.Context, a, b string) ([]domain.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SaveMessage(ctx context.Context, msg *domain.Message) error {
	return wrap("save message", r.db.WithContext(ctx).Create(msg).Error)
}

func (r *messageRepository) History(ctx context.Context, a, b string) ([]domain.Message, error) {
	var list []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("sent_at ASC").
		Find(&list).Error
	return list, wrap("chat history", err)
}
