package services

import (
	"context"
	"errors"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
)

type RatingService interface {
	RateUser(ctx context.Context, raterID string, input dto.RateUserRequest) (*domain.Rating, error)
	GetRatings(ctx context.Context, userID string) (*dto.RatingsResponse, error)
}

type ratingService struct {
	repo  repository.RatingRepository
	users repository.UserRepository
}

func NewRatingService(repo repository.RatingRepository, users repository.UserRepository) RatingService {
	return &ratingService{repo: repo, users: users}
}

func (s *ratingService) RateUser(ctx context.Context, raterID string, input dto.RateUserRequest) (*domain.Rating, error) {
	if input.UserID == raterID {
		return nil, utils.BadRequest("You cannot rate yourself")
	}
	if _, err := s.users.FindUserByID(ctx, input.UserID); err != nil {
		return nil, storageErr(err, "User not found")
	}

	if _, err := s.repo.FindRatingByPair(ctx, input.UserID, raterID); err == nil {
		return nil, utils.BadRequest("You have already rated this user.")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}

	rating := &domain.Rating{UserID: input.UserID, RatedBy: raterID, Rating: input.Rating}
	if err := s.repo.CreateRating(ctx, rating); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, utils.BadRequest("You have already rated this user.")
		}
		return nil, utils.Internal(err)
	}
	return rating, nil
}

func (s *ratingService) GetRatings(ctx context.Context, userID string) (*dto.RatingsResponse, error) {
	list, err := s.repo.FindRatingsForUser(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err)
	}

	raterIDs := make([]string, 0, len(list))
	for _, r := range list {
		raterIDs = append(raterIDs, r.RatedBy)
	}
	raters, err := s.users.FindUsersByIDs(ctx, raterIDs)
	if err != nil {
		return nil, utils.Internal(err)
	}
	byID := make(map[string]domain.UserSummary, len(raters))
	for i := range raters {
		byID[raters[i].ID] = raters[i].Summary()
	}

	views := make([]dto.RatingView, 0, len(list))
	for _, r := range list {
		rater, ok := byID[r.RatedBy]
		if !ok {
			rater = domain.UserSummary{ID: r.RatedBy}
		}
		views = append(views, dto.RatingView{ID: r.ID, Rating: r.Rating, RatedBy: rater})
	}
	return &dto.RatingsResponse{Ratings: views, AverageRating: AverageRating(list)}, nil
}

// AverageRating is the arithmetic mean of the ratings, or 0 when there are
// none.
func AverageRating(list []domain.Rating) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return float64(sum) / float64(len(list))
}
