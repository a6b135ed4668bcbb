package dto

import (
	"time"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

const (
	ConnectionStatusSelf      = "self"
	ConnectionStatusNone      = "not_connected"
	ConnectionStatusPending   = "pending"
	ConnectionStatusReceived  = "received"
	ConnectionStatusConnected = "connected"
)

type ConnectionRequestView struct {
	ID        string             `json:"id"`
	Sender    domain.UserSummary `json:"sender"`
	Recipient string             `json:"recipient"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

type ConnectionStatusResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"requestId,omitempty"`
}
