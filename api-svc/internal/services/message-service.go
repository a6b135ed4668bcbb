package services

import (
	"context"
	"strings"
	"time"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
)

type MessageService interface {
	SaveMessage(ctx context.Context, callerID string, input dto.SaveMessageRequest) (*domain.Message, error)
	ChatHistory(ctx context.Context, callerID, userID, friendID string) ([]domain.Message, error)
}

type messageService struct {
	repo repository.MessageRepository
	now  func() time.Time
}

func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo, now: time.Now}
}

func (s *messageService) SaveMessage(ctx context.Context, callerID string, input dto.SaveMessageRequest) (*domain.Message, error) {
	sender := input.Sender
	if sender == "" {
		sender = callerID
	}
	if sender != callerID {
		return nil, utils.Forbidden("Sender must be the authenticated user")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, utils.BadRequest("message is required")
	}

	msg := &domain.Message{
		SenderID:    sender,
		RecipientID: input.Recipient,
		Message:     input.Message,
		Timestamp:   s.now().UTC(),
	}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, utils.Internal(err)
	}
	return msg, nil
}

func (s *messageService) ChatHistory(ctx context.Context, callerID, userID, friendID string) ([]domain.Message, error) {
	if callerID != userID && callerID != friendID {
		return nil, utils.Forbidden("You can only read your own conversations")
	}
	list, err := s.repo.History(ctx, userID, friendID)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return list, nil
}
