package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is immutable once written.
type Message struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID    string    `gorm:"type:varchar(36);not null;index:idx_message_pair" json:"sender"`
	RecipientID string    `gorm:"type:varchar(36);not null;index:idx_message_pair" json:"recipient"`
	Message     string    `gorm:"not null" json:"message"`
	Timestamp   time.Time `gorm:"column:sent_at;not null;index" json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
