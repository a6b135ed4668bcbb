package dto

type SaveMessageRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient" validate:"required"`
	Message   string `json:"message" validate:"required"`
}
