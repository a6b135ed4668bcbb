package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	SaveUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	FindSuggestions(ctx context.Context, exclude []string, limit int) ([]domain.User, error)
	ClearExpiredOTPs(ctx context.Context, before time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return wrap("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) SaveUser(ctx context.Context, user *domain.User) error {
	return wrap("save user", r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.WithContext(ctx).First(user, "id = ?", userID).Error; err != nil {
		return nil, wrap("find user by id", err)
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.WithContext(ctx).First(user, "email = ?", email).Error; err != nil {
		return nil, wrap("find user by email", err)
	}
	return user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.WithContext(ctx).First(user, "username = ?", username).Error; err != nil {
		return nil, wrap("find user by username", err)
	}
	return user, nil
}

func (r *userRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	var users []domain.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, wrap("find users by ids", err)
}

func (r *userRepository) FindSuggestions(ctx context.Context, exclude []string, limit int) ([]domain.User, error) {
	var users []domain.User
	q := r.db.WithContext(ctx).Where("verified = ?", true)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, wrap("find suggestions", err)
}

func (r *userRepository) ClearExpiredOTPs(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("otp <> ? AND otp_expires_at < ?", "", before).
		Updates(map[string]any{"otp": "", "otp_expires_at": nil})
	return res.RowsAffected, wrap("clear expired otps", res.Error)
}
