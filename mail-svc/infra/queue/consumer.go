package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"

	"github.com/quixjob/backend/mail-svc/internal/interfaces"
)

type ConsumerConfig struct {
	Broker   string
	Topic    string
	GroupID  string
	Username string
	Password string
	TLS      bool
}

type KafkaConsumer struct {
	reader  *kafka.Reader
	handler interfaces.ConsumerHandler
	log     *zap.Logger
}

func NewKafkaConsumer(cfg ConsumerConfig, handler interfaces.ConsumerHandler, log *zap.Logger) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	if cfg.TLS {
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Broker},
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		reader:  reader,
		handler: handler,
		log:     log.With(zap.String("topic", cfg.Topic), zap.String("group", cfg.GroupID)),
	}
}

// Listen reads until ctx is cancelled. Offsets are committed after the
// handler runs whether or not it succeeded, so a failed email is not retried.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	for {
		msg, err := kc.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// reader closed
			if errors.Is(err, io.EOF) {
				return nil
			}
			kc.log.Warn("kafka read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		log := kc.log.With(zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
		if err := kc.handler.HandleMessage(ctx, msg.Key, msg.Value); err != nil {
			log.Error("handle message failed", zap.Error(err))
		}
		if err := kc.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Warn("commit failed", zap.Error(err))
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.reader.Close()
}
