package domain

const (
	NotificationLike               = "like"
	NotificationComment            = "comment"
	NotificationConnectionAccepted = "connectionAccepted"
)

// Notification is an in-app entry shown to its recipient.
type Notification struct {
	Base
	RecipientID   string `gorm:"type:varchar(36);not null;index" json:"recipient"`
	Type          string `gorm:"type:varchar(32);not null" json:"type"`
	RelatedUserID string `gorm:"type:varchar(36)" json:"relatedUserId,omitempty"`
	RelatedPostID string `gorm:"type:varchar(36);index" json:"relatedPostId,omitempty"`
	Read          bool   `gorm:"not null;default:false" json:"read"`
}
