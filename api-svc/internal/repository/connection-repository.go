package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type ConnectionRepository interface {
	CreateRequest(ctx context.Context, req *domain.ConnectionRequest) error
	FindRequestByID(ctx context.Context, id string) (*domain.ConnectionRequest, error)
	FindPendingBetween(ctx context.Context, a, b string) (*domain.ConnectionRequest, error)
	ListPendingFor(ctx context.Context, recipientID string) ([]domain.ConnectionRequest, error)
	// Accept moves a pending request to accepted and links both users in
	// one transaction.
	Accept(ctx context.Context, req *domain.ConnectionRequest, sender, recipient *domain.User) error
	Reject(ctx context.Context, req *domain.ConnectionRequest) error
	Disconnect(ctx context.Context, a, b *domain.User) error
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) CreateRequest(ctx context.Context, req *domain.ConnectionRequest) error {
	return wrap("create connection request", r.db.WithContext(ctx).Create(req).Error)
}

func (r *connectionRepository) FindRequestByID(ctx context.Context, id string) (*domain.ConnectionRequest, error) {
	req := &domain.ConnectionRequest{}
	if err := r.db.WithContext(ctx).First(req, "id = ?", id).Error; err != nil {
		return nil, wrap("find connection request", err)
	}
	return req, nil
}

func (r *connectionRepository) FindPendingBetween(ctx context.Context, a, b string) (*domain.ConnectionRequest, error) {
	req := &domain.ConnectionRequest{}
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.ConnectionPending).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		First(req).Error
	if err != nil {
		return nil, wrap("find pending request", err)
	}
	return req, nil
}

func (r *connectionRepository) ListPendingFor(ctx context.Context, recipientID string) ([]domain.ConnectionRequest, error) {
	var reqs []domain.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, domain.ConnectionPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, wrap("list pending requests", err)
}

func (r *connectionRepository) transition(tx *gorm.DB, req *domain.ConnectionRequest, status string) error {
	res := tx.Model(&domain.ConnectionRequest{}).
		Where("id = ? AND status = ?", req.ID, domain.ConnectionPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTransition
	}
	req.Status = status
	return nil
}

func (r *connectionRepository) Accept(ctx context.Context, req *domain.ConnectionRequest, sender, recipient *domain.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(tx, req, domain.ConnectionAccepted); err != nil {
			return err
		}
		if !sender.IsConnectedTo(recipient.ID) {
			sender.Connections = append(sender.Connections, recipient.ID)
		}
		if !recipient.IsConnectedTo(sender.ID) {
			recipient.Connections = append(recipient.Connections, sender.ID)
		}
		if err := tx.Model(sender).Select("Connections").Updates(sender).Error; err != nil {
			return err
		}
		return tx.Model(recipient).Select("Connections").Updates(recipient).Error
	})
	return wrap("accept connection request", err)
}

func (r *connectionRepository) Reject(ctx context.Context, req *domain.ConnectionRequest) error {
	err := r.transition(r.db.WithContext(ctx), req, domain.ConnectionRejected)
	return wrap("reject connection request", err)
}

func (r *connectionRepository) Disconnect(ctx context.Context, a, b *domain.User) error {
	a.Connections = without(a.Connections, b.ID)
	b.Connections = without(b.Connections, a.ID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Select("Connections").Updates(a).Error; err != nil {
			return err
		}
		return tx.Model(b).Select("Connections").Updates(b).Error
	})
	return wrap("disconnect users", err)
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
