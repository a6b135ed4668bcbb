package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/interfaces"
	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

// Notifier delivers user-facing notifications (emails).
type Notifier interface {
	Notify(ctx context.Context, n mailer.Notification) error
}

type directNotifier struct {
	dispatcher *mailer.Dispatcher
}

// NewDirectNotifier renders and sends in process.
func NewDirectNotifier(d *mailer.Dispatcher) Notifier {
	return &directNotifier{dispatcher: d}
}

func (n *directNotifier) Notify(ctx context.Context, note mailer.Notification) error {
	return n.dispatcher.Dispatch(ctx, note)
}

type kafkaNotifier struct {
	producer interfaces.ProducerHandler
}

// NewKafkaNotifier publishes notifications for mail-svc to deliver.
func NewKafkaNotifier(p interfaces.ProducerHandler) Notifier {
	return &kafkaNotifier{producer: p}
}

func (n *kafkaNotifier) Notify(ctx context.Context, note mailer.Notification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return n.producer.PublishMessage(ctx, []byte(note.To), payload)
}

// notifyLogged sends note and only logs a failure.
func notifyLogged(ctx context.Context, n Notifier, note mailer.Notification) {
	if err := n.Notify(ctx, note); err != nil {
		logger.FromContext(ctx).Warn("notification failed",
			zap.String("kind", string(note.Kind)),
			zap.String("to", note.To),
			zap.Error(err),
		)
	}
}
