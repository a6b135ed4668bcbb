package api

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/config"
	"github.com/quixjob/backend/api-svc/infra/queue"
	"github.com/quixjob/backend/api-svc/internal/api/rest/handlers"
	"github.com/quixjob/backend/api-svc/internal/api/rest/middleware"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/interfaces"
	"github.com/quixjob/backend/api-svc/internal/relay"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/api-svc/internal/services"
	"github.com/quixjob/backend/api-svc/pkg/cloudinary"
	"github.com/quixjob/backend/api-svc/pkg/storage"
	"github.com/quixjob/backend/pkg/mailer"
)

const uploadsPath = "/uploads"

// Deps are the collaborators NewApp wires into handlers. Infrastructure is
// built by StartServer; tests pass fakes.
type Deps struct {
	Config   config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Notifier services.Notifier
	Uploader interfaces.Uploader
	Registry *relay.Registry
}

func NewApp(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:      "quixjob-api",
		BodyLimit:    8 << 20,
		ErrorHandler: utils.HandleError,
	})

	app.Use(middleware.RequestLogger(d.Log))
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Env != "prod"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	if cfg.StorageDriver == "local" {
		app.Static(uploadsPath, cfg.UploadDir, fiber.Static{Download: true})
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.TokenTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(d.DB)
	connRepo := repository.NewConnectionRepository(d.DB)
	postRepo := repository.NewPostRepository(d.DB)
	jobRepo := repository.NewJobRepository(d.DB)
	applicantRepo := repository.NewApplicantRepository(d.DB)
	statusRepo := repository.NewJobStatusRepository(d.DB)
	ratingRepo := repository.NewRatingRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, authHelper, d.Notifier, cfg.OTPTTL, cfg.ClientURL)
	userSvc := services.NewUserService(userRepo, d.Uploader)
	connSvc := services.NewConnectionService(userRepo, connRepo, notificationRepo, d.Notifier, cfg.ClientURL)
	postSvc := services.NewPostService(userRepo, postRepo, notificationRepo, d.Notifier, cfg.ClientURL)
	jobSvc := services.NewJobService(jobRepo, statusRepo, cfg.QuizPassPercent)
	applicantSvc := services.NewApplicantService(applicantRepo, jobRepo, statusRepo, userRepo, d.Uploader, d.Notifier)
	statusSvc := services.NewJobStatusService(statusRepo, jobRepo)
	ratingSvc := services.NewRatingService(ratingRepo, userRepo)
	messageSvc := services.NewMessageService(messageRepo)
	notificationSvc := services.NewNotificationService(notificationRepo, userRepo)

	requireAuth := middleware.AuthMiddleware(authSvc)

	// ---------- Handlers ----------
	v1 := app.Group("/api/v1")
	v1.Get("/health", health)

	handlers.NewAuthHandler(authSvc, authHelper, cfg.CookieSecure).SetupRoutes(v1, requireAuth)
	handlers.NewUserHandler(userSvc).SetupRoutes(v1, requireAuth)
	handlers.NewConnectionHandler(connSvc).SetupRoutes(v1, requireAuth)
	handlers.NewPostHandler(postSvc).SetupRoutes(v1, requireAuth)
	handlers.NewJobHandler(jobSvc).SetupRoutes(v1, requireAuth)
	handlers.NewApplicantHandler(applicantSvc).SetupRoutes(v1, requireAuth)
	handlers.NewJobStatusHandler(statusSvc).SetupRoutes(v1, requireAuth)
	handlers.NewRatingHandler(ratingSvc).SetupRoutes(v1, requireAuth)
	handlers.NewMessageHandler(messageSvc).SetupRoutes(v1, requireAuth)
	handlers.NewNotificationHandler(notificationSvc).SetupRoutes(v1, requireAuth)

	registry := d.Registry
	if registry == nil {
		registry = relay.NewRegistry()
	}
	handlers.NewChatHandler(relay.New(registry, d.Log), d.Log).SetupRoutes(app, requireAuth)

	app.Get("/", health)
	return app
}

func health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// StartServer builds the infrastructure, serves until SIGINT/SIGTERM and then
// shuts down gracefully.
func StartServer(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- DB ----------
	db, err := OpenDatabase(cfg, log)
	if err != nil {
		return err
	}
	log.Info("database connected", zap.String("driver", cfg.DatabaseDriver))
	if err := Migrate(db); err != nil {
		return err
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	uploader, err := newUploader(cfg)
	if err != nil {
		return err
	}
	notifier, closeNotifier, err := newNotifier(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	sweeper := services.NewOTPCleanupService(repository.NewUserRepository(db), log)
	c := cron.New()
	if _, err := c.AddFunc(cfg.OTPSweepSchedule, func() {
		if e := sweeper.CleanupExpired(context.Background()); e != nil {
			log.Error("otp sweep failed", zap.Error(e))
		}
	}); err != nil {
		return fmt.Errorf("schedule otp sweep: %w", err)
	}
	c.Start()
	defer c.Stop()

	app := NewApp(Deps{
		Config:   cfg,
		DB:       db,
		Log:      log,
		Notifier: notifier,
		Uploader: uploader,
		Registry: relay.NewRegistry(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ServerPort))
		errCh <- app.Listen(cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newUploader(cfg config.Config) (interfaces.Uploader, error) {
	if cfg.StorageDriver == "cloudinary" {
		cld, err := cloudinary.New(cfg.CloudinaryUrl)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init: %w", err)
		}
		return cloudinary.NewCloudinaryUploader(cld), nil
	}
	local, err := storage.NewLocalStorage(cfg.UploadDir, strings.TrimRight(cfg.BaseURL, "/")+uploadsPath)
	if err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}
	return local, nil
}

// newNotifier returns the email transport and a func releasing it.
func newNotifier(cfg config.Config, log *zap.Logger) (services.Notifier, func(), error) {
	if cfg.NotifyTransport == "kafka" {
		producer := queue.NewProducer(queue.ProducerConfig{
			Broker:   cfg.KafkaBroker,
			Topic:    cfg.KafkaTopic,
			Username: cfg.KafkaUsername,
			Password: cfg.KafkaPassword,
			TLS:      cfg.KafkaTLS,
		}, log)
		closeFn := func() {
			if err := producer.Close(); err != nil {
				log.Warn("kafka producer close", zap.Error(err))
			}
		}
		return services.NewKafkaNotifier(producer), closeFn, nil
	}

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
	}, log.Named("mailer"))
	if err != nil {
		return nil, nil, err
	}
	dispatcher, err := mailer.NewDispatcher(sender)
	if err != nil {
		return nil, nil, err
	}
	return services.NewDirectNotifier(dispatcher), func() {}, nil
}
