package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

type RateUserRequest struct {
	UserID string `json:"userId" validate:"required"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

type RatingView struct {
	ID      string             `json:"id"`
	Rating  int                `json:"rating"`
	RatedBy domain.UserSummary `json:"ratedBy"`
}

type RatingsResponse struct {
	Ratings       []RatingView `json:"ratings"`
	AverageRating float64      `json:"averageRating"`
}
