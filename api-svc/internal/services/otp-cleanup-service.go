package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/repository"
)

// otpRetention is how long an expired passcode is kept before it is blanked.
const otpRetention = 24 * time.Hour

type OTPCleanupService interface {
	CleanupExpired(ctx context.Context) error
}

type otpCleanupService struct {
	repo repository.UserRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewOTPCleanupService(repo repository.UserRepository, log *zap.Logger) OTPCleanupService {
	return &otpCleanupService{repo: repo, log: log.Named("otp-cleanup"), now: time.Now}
}

func (s *otpCleanupService) CleanupExpired(ctx context.Context) error {
	n, err := s.repo.ClearExpiredOTPs(ctx, s.now().Add(-otpRetention))
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("cleared expired passcodes", zap.Int64("count", n))
	}
	return nil
}
