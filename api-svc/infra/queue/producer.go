package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

type ProducerConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
	TLS      bool
}

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(cfg ProducerConfig, log *zap.Logger) *Producer {
	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	if cfg.TLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Broker),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			Async:                  false,
			Transport:              transport,
			WriteTimeout:           10 * time.Second,
			AllowAutoTopicCreation: true,
		},
		log: log.Named("kafka-producer"),
	}
}

// PublishMessage writes one message keyed by key. Messages with the same key
// land on the same partition.
func (p *Producer) PublishMessage(ctx context.Context, key, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Error("publish failed", zap.String("topic", p.writer.Topic), zap.Error(err))
		return err
	}
	p.log.Debug("published", zap.String("topic", p.writer.Topic), zap.ByteString("key", key))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
