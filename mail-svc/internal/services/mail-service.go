package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

type MailService interface {
	Deliver(ctx context.Context, n mailer.Notification) error
}

type mailService struct {
	dispatcher *mailer.Dispatcher
}

func NewMailService(dispatcher *mailer.Dispatcher) MailService {
	return &mailService{dispatcher: dispatcher}
}

func (s *mailService) Deliver(ctx context.Context, n mailer.Notification) error {
	log := logger.FromContext(ctx).With(zap.String("kind", string(n.Kind)), zap.String("to", n.To))
	if err := s.dispatcher.Dispatch(ctx, n); err != nil {
		return err
	}
	log.Info("mail sent")
	return nil
}
