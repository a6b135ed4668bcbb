package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	SavePost(ctx context.Context, post *domain.Post) error
	FindPostByID(ctx context.Context, id string) (*domain.Post, error)
	FindFeed(ctx context.Context, authorIDs []string, limit int) ([]domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	return wrap("create post", r.db.WithContext(ctx).Create(post).Error)
}

func (r *postRepository) SavePost(ctx context.Context, post *domain.Post) error {
	return wrap("save post", r.db.WithContext(ctx).Save(post).Error)
}

func (r *postRepository) FindPostByID(ctx context.Context, id string) (*domain.Post, error) {
	post := &domain.Post{}
	if err := r.db.WithContext(ctx).First(post, "id = ?", id).Error; err != nil {
		return nil, wrap("find post", err)
	}
	return post, nil
}

func (r *postRepository) FindFeed(ctx context.Context, authorIDs []string, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, wrap("find feed", err)
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id)
	if res.Error == nil && res.RowsAffected == 0 {
		return ErrNotFound
	}
	return wrap("delete post", res.Error)
}
