package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/mailer"
)

const otpLength = 6

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupRequest) (*domain.User, error)
	VerifyOTP(ctx context.Context, input dto.VerifyOTPRequest) (*domain.User, string, error)
	ResendOTP(ctx context.Context, input dto.ResendOTPRequest) error
	Login(ctx context.Context, input dto.LoginRequest) (*domain.User, string, error)
	// Authenticate resolves a session token to a stored user. It returns
	// helper.ErrTokenMissing, ErrTokenInvalid, ErrTokenExpired or
	// ErrUserNotFound for the distinguishable rejections.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	repo      repository.UserRepository
	auth      helper.Auth
	notifier  Notifier
	otpTTL    time.Duration
	clientURL string
	now       func() time.Time
}

func NewAuthService(
	repo repository.UserRepository,
	auth helper.Auth,
	notifier Notifier,
	otpTTL time.Duration,
	clientURL string,
) AuthService {
	return &authService{
		repo:      repo,
		auth:      auth,
		notifier:  notifier,
		otpTTL:    otpTTL,
		clientURL: clientURL,
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupRequest) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	if name == "" || username == "" {
		return nil, utils.BadRequest("All fields are required")
	}

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, utils.BadRequest("Email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}
	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return nil, utils.BadRequest("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return nil, utils.Internal(err)
	}
	otp, err := helper.GenerateOTP(otpLength)
	if err != nil {
		return nil, utils.Internal(err)
	}
	expires := s.now().Add(s.otpTTL)

	user := &domain.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		OTP:          otp,
		OTPExpiresAt: &expires,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, utils.BadRequest("Email or username already exists")
		}
		return nil, utils.Internal(err)
	}

	if err := s.sendOTP(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) sendOTP(ctx context.Context, user *domain.User) error {
	err := s.notifier.Notify(ctx, mailer.Notification{
		Kind: mailer.KindOTP,
		To:   user.Email,
		Data: map[string]string{"OTP": user.OTP, "Name": user.Name},
	})
	if err != nil {
		return &utils.AppError{
			Status:  http.StatusInternalServerError,
			Message: "Error sending OTP. Please try again.",
			Err:     err,
		}
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, input dto.VerifyOTPRequest) (*domain.User, string, error) {
	user, err := s.repo.FindUserByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", utils.BadRequest("User not found")
		}
		return nil, "", utils.Internal(err)
	}

	if !helper.OTPEqual(user.OTP, strings.TrimSpace(input.OTP)) {
		return nil, "", utils.BadRequest("Invalid OTP")
	}
	if user.OTPExpiresAt == nil || s.now().After(*user.OTPExpiresAt) {
		return nil, "", utils.BadRequest("OTP has expired")
	}

	firstVerification := !user.Verified
	user.Verified = true
	user.OTP = ""
	user.OTPExpiresAt = nil
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, "", utils.Internal(err)
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", utils.Internal(err)
	}

	if firstVerification {
		notifyLogged(ctx, s.notifier, mailer.Notification{
			Kind: mailer.KindWelcome,
			To:   user.Email,
			Data: map[string]string{
				"Name":       user.Name,
				"ProfileURL": s.clientURL + "/profile/" + user.Username,
			},
		})
	}
	return user, token, nil
}

func (s *authService) ResendOTP(ctx context.Context, input dto.ResendOTPRequest) error {
	user, err := s.repo.FindUserByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.BadRequest("User not found")
		}
		return utils.Internal(err)
	}
	if user.Verified {
		return utils.BadRequest("User already verified")
	}

	otp, err := helper.GenerateOTP(otpLength)
	if err != nil {
		return utils.Internal(err)
	}
	expires := s.now().Add(s.otpTTL)
	user.OTP = otp
	user.OTPExpiresAt = &expires
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return utils.Internal(err)
	}
	return s.sendOTP(ctx, user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*domain.User, string, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", utils.BadRequest("Invalid credentials")
		}
		return nil, "", utils.Internal(err)
	}
	if err := helper.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, "", utils.BadRequest("Invalid credentials")
	}
	if !user.Verified {
		return nil, "", utils.BadRequest("Please verify your email before logging in")
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, "", utils.Internal(err)
	}
	return user, token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.auth.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
