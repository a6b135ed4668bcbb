package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name       *string              `json:"name,omitempty" validate:"omitempty,min=1,nocontrol"`
	Headline   *string              `json:"headline,omitempty"`
	Location   *string              `json:"location,omitempty"`
	About      *string              `json:"about,omitempty"`
	BannerImg  *string              `json:"bannerImg,omitempty"`
	Skills     *[]string            `json:"skills,omitempty"`
	Experience *[]domain.Experience `json:"experience,omitempty"`
	Education  *[]domain.Education  `json:"education,omitempty"`
}
