package services

import (
	"context"
	"errors"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/mailer"
)

type ConnectionService interface {
	SendRequest(ctx context.Context, senderID, recipientID string) (*domain.ConnectionRequest, error)
	AcceptRequest(ctx context.Context, userID, requestID string) (*domain.ConnectionRequest, error)
	RejectRequest(ctx context.Context, userID, requestID string) (*domain.ConnectionRequest, error)
	ListRequests(ctx context.Context, userID string) ([]dto.ConnectionRequestView, error)
	ListConnections(ctx context.Context, userID string) ([]domain.UserSummary, error)
	RemoveConnection(ctx context.Context, userID, otherID string) error
	Status(ctx context.Context, userID, otherID string) (dto.ConnectionStatusResponse, error)
}

type connectionService struct {
	users         repository.UserRepository
	repo          repository.ConnectionRepository
	notifications repository.NotificationRepository
	notifier      Notifier
	clientURL     string
}

func NewConnectionService(
	users repository.UserRepository,
	repo repository.ConnectionRepository,
	notifications repository.NotificationRepository,
	notifier Notifier,
	clientURL string,
) ConnectionService {
	return &connectionService{
		users:         users,
		repo:          repo,
		notifications: notifications,
		notifier:      notifier,
		clientURL:     clientURL,
	}
}

func (s *connectionService) SendRequest(ctx context.Context, senderID, recipientID string) (*domain.ConnectionRequest, error) {
	if senderID == recipientID {
		return nil, utils.BadRequest("You can't send a request to yourself")
	}

	sender, err := s.users.FindUserByID(ctx, senderID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	if _, err := s.users.FindUserByID(ctx, recipientID); err != nil {
		return nil, storageErr(err, "User not found")
	}
	if sender.IsConnectedTo(recipientID) {
		return nil, utils.BadRequest("You are already connected")
	}

	if _, err := s.repo.FindPendingBetween(ctx, senderID, recipientID); err == nil {
		return nil, utils.BadRequest("A connection request already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}

	req := &domain.ConnectionRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      domain.ConnectionPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, utils.Internal(err)
	}
	return req, nil
}

// pendingFor loads a request the caller may act on as its recipient.
func (s *connectionService) pendingFor(ctx context.Context, userID, requestID string) (*domain.ConnectionRequest, error) {
	req, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, storageErr(err, "Connection request not found")
	}
	if req.RecipientID != userID {
		return nil, utils.Forbidden("Not authorized to respond to this request")
	}
	if req.Status != domain.ConnectionPending {
		return nil, utils.BadRequest("This request has already been processed")
	}
	return req, nil
}

func (s *connectionService) AcceptRequest(ctx context.Context, userID, requestID string) (*domain.ConnectionRequest, error) {
	req, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.FindUserByID(ctx, req.SenderID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	recipient, err := s.users.FindUserByID(ctx, req.RecipientID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}

	if err := s.repo.Accept(ctx, req, sender, recipient); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return nil, utils.BadRequest("This request has already been processed")
		}
		return nil, utils.Internal(err)
	}

	recordLogged(ctx, s.notifications, &domain.Notification{
		RecipientID:   sender.ID,
		Type:          domain.NotificationConnectionAccepted,
		RelatedUserID: recipient.ID,
	})
	notifyLogged(ctx, s.notifier, mailer.Notification{
		Kind: mailer.KindConnectionAccepted,
		To:   sender.Email,
		Data: map[string]string{
			"SenderName":    sender.Name,
			"RecipientName": recipient.Name,
			"ProfileURL":    s.clientURL + "/profile/" + recipient.Username,
		},
	})
	return req, nil
}

func (s *connectionService) RejectRequest(ctx context.Context, userID, requestID string) (*domain.ConnectionRequest, error) {
	req, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Reject(ctx, req); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return nil, utils.BadRequest("This request has already been processed")
		}
		return nil, utils.Internal(err)
	}
	return req, nil
}

func (s *connectionService) ListRequests(ctx context.Context, userID string) ([]dto.ConnectionRequestView, error) {
	reqs, err := s.repo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err)
	}

	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.SenderID)
	}
	senders, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal(err)
	}
	byID := make(map[string]domain.UserSummary, len(senders))
	for i := range senders {
		byID[senders[i].ID] = senders[i].Summary()
	}

	out := make([]dto.ConnectionRequestView, 0, len(reqs))
	for _, r := range reqs {
		sender, ok := byID[r.SenderID]
		if !ok {
			continue
		}
		out = append(out, dto.ConnectionRequestView{
			ID:        r.ID,
			Sender:    sender,
			Recipient: r.RecipientID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

func (s *connectionService) ListConnections(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "User not found")
	}
	users, err := s.users.FindUsersByIDs(ctx, user.Connections)
	if err != nil {
		return nil, utils.Internal(err)
	}
	out := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *connectionService) RemoveConnection(ctx context.Context, userID, otherID string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return storageErr(err, "User not found")
	}
	other, err := s.users.FindUserByID(ctx, otherID)
	if err != nil {
		return storageErr(err, "User not found")
	}
	if err := s.repo.Disconnect(ctx, user, other); err != nil {
		return utils.Internal(err)
	}
	return nil
}

func (s *connectionService) Status(ctx context.Context, userID, otherID string) (dto.ConnectionStatusResponse, error) {
	if userID == otherID {
		return dto.ConnectionStatusResponse{Status: dto.ConnectionStatusSelf}, nil
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return dto.ConnectionStatusResponse{}, storageErr(err, "User not found")
	}
	if user.IsConnectedTo(otherID) {
		return dto.ConnectionStatusResponse{Status: dto.ConnectionStatusConnected}, nil
	}

	req, err := s.repo.FindPendingBetween(ctx, userID, otherID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return dto.ConnectionStatusResponse{Status: dto.ConnectionStatusNone}, nil
	case err != nil:
		return dto.ConnectionStatusResponse{}, utils.Internal(err)
	case req.SenderID == userID:
		return dto.ConnectionStatusResponse{Status: dto.ConnectionStatusPending, RequestID: req.ID}, nil
	default:
		return dto.ConnectionStatusResponse{Status: dto.ConnectionStatusReceived, RequestID: req.ID}, nil
	}
}
