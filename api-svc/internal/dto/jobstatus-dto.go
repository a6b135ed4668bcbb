package dto

import (
	"time"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type SaveJobStatusRequest struct {
	UserID string `json:"userId" validate:"required"`
	JobID  string `json:"jobId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=applied rejected 'not eligible'"`
}

type JobStatusView struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Job       *domain.Job `json:"job"`
	JobID     string      `json:"jobId"`
	Status    string      `json:"status"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
