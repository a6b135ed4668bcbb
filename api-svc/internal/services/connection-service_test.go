package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/pkg/mailer"
)

func TestConnectionFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewConnectionService(f.users, f.conns, f.notes, f.notifier, "http://client")
	a := f.user(t, "alice")
	b := f.user(t, "bob")

	req, err := svc.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, b.ID, a.ID)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	st, err := svc.Status(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ConnectionStatusPending, st.Status)
	st, err = svc.Status(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ConnectionStatusReceived, st.Status)
	assert.Equal(t, req.ID, st.RequestID)

	pending, err := svc.ListRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].Sender.Username)

	_, err = svc.AcceptRequest(ctx, a.ID, req.ID)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	accepted, err := svc.AcceptRequest(ctx, b.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionAccepted, accepted.Status)

	sent := f.notifier.last()
	assert.Equal(t, mailer.KindConnectionAccepted, sent.Kind)
	assert.Equal(t, a.Email, sent.To)
	assert.Equal(t, "http://client/profile/bob", sent.Data["ProfileURL"])

	notes, err := f.notes.FindForRecipient(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationConnectionAccepted, notes[0].Type)
	assert.Equal(t, b.ID, notes[0].RelatedUserID)

	_, err = svc.RejectRequest(ctx, b.ID, req.ID)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	conns, err := svc.ListConnections(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, b.ID, conns[0].ID)

	st, err = svc.Status(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ConnectionStatusConnected, st.Status)

	require.NoError(t, svc.RemoveConnection(ctx, a.ID, b.ID))
	st, err = svc.Status(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ConnectionStatusNone, st.Status)
}

func TestSendRequest_Guards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewConnectionService(f.users, f.conns, f.notes, f.notifier, "")
	a := f.user(t, "alice")

	_, err := svc.SendRequest(ctx, a.ID, a.ID)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	_, err = svc.SendRequest(ctx, a.ID, "missing")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	st, err := svc.Status(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ConnectionStatusSelf, st.Status)
}
