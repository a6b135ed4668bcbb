package domain

const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// ConnectionRequest leaves pending exactly once; accepted and rejected are
// terminal.
type ConnectionRequest struct {
	Base
	SenderID    string `gorm:"type:varchar(36);not null;index" json:"sender"`
	RecipientID string `gorm:"type:varchar(36);not null;index" json:"recipient"`
	Status      string `gorm:"type:varchar(20);not null;default:pending" json:"status"`
}
