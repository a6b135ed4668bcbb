package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type RatingRepository interface {
	CreateRating(ctx context.Context, rating *domain.Rating) error
	FindRatingByPair(ctx context.Context, userID, ratedBy string) (*domain.Rating, error)
	FindRatingsForUser(ctx context.Context, userID string) ([]domain.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// CreateRating returns the raw duplicate-key error so callers can detect a
// second rating for the same pair.
func (r *ratingRepository) CreateRating(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) FindRatingByPair(ctx context.Context, userID, ratedBy string) (*domain.Rating, error) {
	rating := &domain.Rating{}
	err := r.db.WithContext(ctx).First(rating, "user_id = ? AND rated_by = ?", userID, ratedBy).Error
	if err != nil {
		return nil, wrap("find rating", err)
	}
	return rating, nil
}

func (r *ratingRepository) FindRatingsForUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	var list []domain.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error
	return list, wrap("find ratings", err)
}
