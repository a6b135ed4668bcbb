package domain

import "time"

type Comment struct {
	Content   string    `json:"content"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	Base
	AuthorID string    `gorm:"type:varchar(36);not null;index" json:"author"`
	Content  string    `json:"content"`
	Image    string    `json:"image"`
	Likes    []string  `gorm:"serializer:json;type:text" json:"likes"`
	Comments []Comment `gorm:"serializer:json;type:text" json:"comments"`
}
