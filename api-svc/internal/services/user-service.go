package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/interfaces"
	"github.com/quixjob/backend/api-svc/internal/repository"
	pkgutils "github.com/quixjob/backend/api-svc/pkg/utils"
)

const (
	suggestionLimit   = 5
	avatarMaxWidth    = 400
	avatarJPEGQuality = 85
	avatarFolder      = "avatars"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetProfile(ctx context.Context, username string) (*domain.User, error)
	GetSuggestions(ctx context.Context, userID string) ([]domain.UserSummary, error)
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileRequest) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, userID string, image []byte) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	uploader interfaces.Uploader
}

func NewUserService(repo repository.UserRepository, uploader interfaces.Uploader) UserService {
	return &userService{repo: repo, uploader: uploader}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	return user, nil
}

func (s *userService) GetSuggestions(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}

	exclude := append([]string{user.ID}, user.Connections...)
	users, err := s.repo.FindSuggestions(ctx, exclude, suggestionLimit)
	if err != nil {
		return nil, utils.Internal(err)
	}

	out := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, utils.BadRequest("name is required")
		}
		user.Name = name
	}
	if input.Headline != nil {
		user.Headline = strings.TrimSpace(*input.Headline)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.About != nil {
		user.About = *input.About
	}
	if input.BannerImg != nil {
		user.BannerImg = strings.TrimSpace(*input.BannerImg)
	}
	if input.Skills != nil {
		user.Skills = *input.Skills
	}
	if input.Experience != nil {
		user.Experience = *input.Experience
	}
	if input.Education != nil {
		user.Education = *input.Education
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, utils.Internal(err)
	}
	return user, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, image []byte) (*domain.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}

	jpg, err := pkgutils.NormalizeToJPG(image, avatarMaxWidth, avatarJPEGQuality)
	if err != nil {
		if errors.Is(err, pkgutils.ErrUnsupportedImage) {
			return nil, utils.BadRequest("Profile picture must be a JPEG, PNG or WebP image")
		}
		return nil, utils.BadRequest("Invalid image")
	}

	ref, err := s.uploader.UploadBytes(ctx, avatarFolder, user.ID+"-"+uuid.NewString()+".jpg", jpg)
	if err != nil {
		return nil, utils.Internal(err)
	}

	user.ProfilePicture = ref
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, utils.Internal(err)
	}
	return user, nil
}
