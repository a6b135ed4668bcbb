package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/quixjob/backend/mail-svc/config"
	"github.com/quixjob/backend/mail-svc/infra/queue"
	"github.com/quixjob/backend/mail-svc/internal/api/rest/handlers"
	"github.com/quixjob/backend/mail-svc/internal/services"
	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl := logger.ForEnvironment(cfg.Env, cfg.LogLevel, cfg.LogFormat).Named("mail-svc")
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- Init Service ----------
	sender, err := mailer.NewSender(mailer.ProviderConfig{
		Provider: cfg.MailProvider,
		SMTP: mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		},
		SendgridAPIKey: cfg.SendgridAPIKey,
	}, zl)
	if err != nil {
		zl.Fatal("mail sender", zap.Error(err))
	}
	dispatcher, err := mailer.NewDispatcher(sender)
	if err != nil {
		zl.Fatal("mail templates", zap.Error(err))
	}
	mailService := services.NewMailService(dispatcher)

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService, zl)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(queue.ConsumerConfig{
		Broker:   cfg.KafkaBroker,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
		TLS:      cfg.KafkaTLS,
	}, handler, zl)
	defer consumer.Close()

	// ---------- Start Listening ----------
	zl.Info("listening for notification events",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", cfg.KafkaGroupID),
	)
	if err := consumer.Listen(ctx); err != nil {
		zl.Error("consumer stopped", zap.Error(err))
	}
	zl.Info("mail service stopped")
}
