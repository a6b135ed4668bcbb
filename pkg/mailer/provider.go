package mailer

import (
	"fmt"

	"go.uber.org/zap"
)

// ProviderConfig selects and configures a Sender.
type ProviderConfig struct {
	Provider       string // smtp, sendgrid, log
	SMTP           SMTPConfig
	SendgridAPIKey string
}

func NewSender(cfg ProviderConfig, log *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPSender(cfg.SMTP), nil
	case "sendgrid":
		return NewSendGridSender(cfg.SendgridAPIKey, cfg.SMTP.From, cfg.SMTP.FromName), nil
	case "", "log":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
