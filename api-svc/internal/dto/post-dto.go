package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// PostView is a post with its author resolved.
type PostView struct {
	domain.Post
	Author domain.UserSummary `json:"author"`
}
