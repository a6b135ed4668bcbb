package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quixjob/backend/mail-svc/internal/services"
	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

var ErrInvalidEvent = errors.New("invalid notification payload")

type MailHandler struct {
	svc services.MailService
	log *zap.Logger
}

func NewMailHandler(svc services.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{svc: svc, log: log}
}

// HandleMessage decodes one notification event and delivers it.
func (h *MailHandler) HandleMessage(ctx context.Context, key, value []byte) error {
	var n mailer.Notification
	if err := json.Unmarshal(value, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if n.Kind == "" || n.To == "" {
		return fmt.Errorf("%w: kind and to are required", ErrInvalidEvent)
	}

	ctx = logger.WithContext(ctx, h.log.With(zap.ByteString("key", key)))
	return h.svc.Deliver(ctx, n)
}
