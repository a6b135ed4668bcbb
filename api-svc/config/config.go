package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string
	BaseURL    string
	ClientURL  string

	DatabaseDriver string
	DatabaseDSN    string

	AccessSecret string
	TokenTTL     time.Duration
	CookieSecure bool

	OTPTTL           time.Duration
	OTPSweepSchedule string
	QuizPassPercent  float64

	NotifyTransport string
	KafkaBroker     string
	KafkaTopic      string
	KafkaUsername   string
	KafkaPassword   string
	KafkaTLS        bool

	StorageDriver string
	UploadDir     string
	CloudinaryUrl string

	MailProvider   string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SendgridAPIKey string
	MailFrom       string
	MailFromName   string

	LogLevel  string
	LogFormat string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		Env:        getEnv("ENV", "dev"),
		ServerPort: getEnv("SERVER_PORT", ":5000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:5000"),
		ClientURL:  getEnv("CLIENT_URL", "http://localhost:5173"),

		DatabaseDriver: getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),

		AccessSecret: os.Getenv("ACCESS_SECRET"),
		TokenTTL:     getDuration("TOKEN_TTL", 72*time.Hour),
		CookieSecure: getBool("COOKIE_SECURE", os.Getenv("ENV") == "prod"),

		OTPTTL:           getDuration("OTP_TTL", 10*time.Minute),
		OTPSweepSchedule: getEnv("OTP_SWEEP_SCHEDULE", "@every 30m"),
		QuizPassPercent:  getFloat("QUIZ_PASS_PERCENT", 75),

		NotifyTransport: getEnv("NOTIFY_TRANSPORT", "direct"),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "quixjob.notifications"),
		KafkaUsername:   os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:   os.Getenv("KAFKA_PASSWORD"),
		KafkaTLS:        getBool("KAFKA_TLS", false),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		CloudinaryUrl: os.Getenv("CLOUDINARY_URL"),

		MailProvider:   getEnv("MAIL_PROVIDER", "log"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getEnv("MAIL_FROM", "noreply@quixjob.dev"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "QuiX Job"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.AccessSecret == "" {
		errs = append(errs, errors.New("ACCESS_SECRET is required"))
	}
	switch c.DatabaseDriver {
	case "postgres":
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN is required for postgres"))
		}
	case "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DatabaseDriver))
	}
	switch c.NotifyTransport {
	case "direct":
	case "kafka":
		if c.KafkaBroker == "" {
			errs = append(errs, errors.New("KAFKA_BROKER is required for kafka transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_TRANSPORT %q", c.NotifyTransport))
	}
	switch c.StorageDriver {
	case "local", "cloudinary":
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	switch c.MailProvider {
	case "smtp", "sendgrid", "log":
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider))
	}
	if c.QuizPassPercent <= 0 || c.QuizPassPercent > 100 {
		errs = append(errs, errors.New("QUIZ_PASS_PERCENT must be in (0, 100]"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
