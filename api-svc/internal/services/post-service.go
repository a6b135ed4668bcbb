package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

const feedLimit = 100

type PostService interface {
	Feed(ctx context.Context, userID string) ([]dto.PostView, error)
	CreatePost(ctx context.Context, userID string, input dto.CreatePostRequest) (*dto.PostView, error)
	GetPost(ctx context.Context, postID string) (*dto.PostView, error)
	DeletePost(ctx context.Context, userID, postID string) error
	Comment(ctx context.Context, userID, postID string, input dto.CommentRequest) (*dto.PostView, error)
	ToggleLike(ctx context.Context, userID, postID string) (*dto.PostView, error)
}

type postService struct {
	users         repository.UserRepository
	repo          repository.PostRepository
	notifications repository.NotificationRepository
	notifier      Notifier
	clientURL     string
	now           func() time.Time
}

func NewPostService(
	users repository.UserRepository,
	repo repository.PostRepository,
	notifications repository.NotificationRepository,
	notifier Notifier,
	clientURL string,
) PostService {
	return &postService{
		users:         users,
		repo:          repo,
		notifications: notifications,
		notifier:      notifier,
		clientURL:     clientURL,
		now:           time.Now,
	}
}

func (s *postService) Feed(ctx context.Context, userID string) ([]dto.PostView, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	posts, err := s.repo.FindFeed(ctx, append([]string{user.ID}, user.Connections...), feedLimit)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return s.views(ctx, posts)
}

func (s *postService) CreatePost(ctx context.Context, userID string, input dto.CreatePostRequest) (*dto.PostView, error) {
	post := &domain.Post{
		AuthorID: userID,
		Content:  strings.TrimSpace(input.Content),
		Image:    strings.TrimSpace(input.Image),
	}
	if post.Content == "" {
		return nil, utils.BadRequest("content is required")
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, utils.Internal(err)
	}
	return s.view(ctx, post)
}

func (s *postService) GetPost(ctx context.Context, postID string) (*dto.PostView, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, storageErr(err, "Post not found")
	}
	return s.view(ctx, post)
}

func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return storageErr(err, "Post not found")
	}
	if post.AuthorID != userID {
		return utils.Forbidden("You are not authorized to delete this post")
	}
	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return storageErr(err, "Post not found")
	}
	if err := s.notifications.DeleteForPost(ctx, postID); err != nil {
		logger.FromContext(ctx).Warn("post notifications not removed", zap.String("post", postID), zap.Error(err))
	}
	return nil
}

func (s *postService) Comment(ctx context.Context, userID, postID string, input dto.CommentRequest) (*dto.PostView, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, storageErr(err, "Post not found")
	}
	commenter, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}

	post.Comments = append(post.Comments, domain.Comment{
		Content:   content,
		UserID:    userID,
		CreatedAt: s.now(),
	})
	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, utils.Internal(err)
	}

	if post.AuthorID != userID {
		recordLogged(ctx, s.notifications, &domain.Notification{
			RecipientID:   post.AuthorID,
			Type:          domain.NotificationComment,
			RelatedUserID: userID,
			RelatedPostID: post.ID,
		})
		if author, err := s.users.FindUserByID(ctx, post.AuthorID); err == nil {
			notifyLogged(ctx, s.notifier, mailer.Notification{
				Kind: mailer.KindComment,
				To:   author.Email,
				Data: map[string]string{
					"Name":          author.Name,
					"CommenterName": commenter.Name,
					"Comment":       content,
					"PostURL":       s.clientURL + "/post/" + post.ID,
				},
			})
		}
	}
	return s.view(ctx, post)
}

func (s *postService) ToggleLike(ctx context.Context, userID, postID string) (*dto.PostView, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, storageErr(err, "Post not found")
	}

	liked := false
	likes := post.Likes[:0:0]
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			continue
		}
		likes = append(likes, id)
	}
	if !liked {
		likes = append(likes, userID)
	}
	post.Likes = likes

	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, utils.Internal(err)
	}
	if !liked && post.AuthorID != userID {
		recordLogged(ctx, s.notifications, &domain.Notification{
			RecipientID:   post.AuthorID,
			Type:          domain.NotificationLike,
			RelatedUserID: userID,
			RelatedPostID: post.ID,
		})
	}
	return s.view(ctx, post)
}

func (s *postService) view(ctx context.Context, post *domain.Post) (*dto.PostView, error) {
	views, err := s.views(ctx, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *postService) views(ctx context.Context, posts []domain.Post) ([]dto.PostView, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	authors, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal(err)
	}
	byID := make(map[string]domain.UserSummary, len(authors))
	for i := range authors {
		byID[authors[i].ID] = authors[i].Summary()
	}

	out := make([]dto.PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			author = domain.UserSummary{ID: p.AuthorID}
		}
		out = append(out, dto.PostView{Post: p, Author: author})
	}
	return out, nil
}
