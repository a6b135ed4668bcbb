package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

// NotificationView is a notification with the user who triggered it.
type NotificationView struct {
	domain.Notification
	RelatedUser *domain.UserSummary `json:"relatedUser,omitempty"`
}
