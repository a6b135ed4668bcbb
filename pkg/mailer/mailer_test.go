package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestDispatcherRendersEveryKind(t *testing.T) {
	d, err := NewDispatcher(&recordingSender{})
	require.NoError(t, err)

	data := map[string]string{
		"OTP":           "123456",
		"Name":          "Ada",
		"JobTitle":      "Backend Engineer",
		"SenderName":    "Ada",
		"RecipientName": "Grace",
		"CommenterName": "Linus",
		"Comment":       "nice",
		"ProfileURL":    "http://localhost/profile/grace",
	}
	for kind := range kinds {
		msg, err := d.Render(Notification{Kind: kind, To: "ada@example.com", Data: data})
		require.NoError(t, err, kind)
		assert.Equal(t, "ada@example.com", msg.To)
		assert.NotEmpty(t, msg.Subject, kind)
		assert.NotEmpty(t, msg.HTML, kind)
		assert.NotEmpty(t, msg.Text, kind)
	}
}

func TestRenderContent(t *testing.T) {
	d, err := NewDispatcher(&recordingSender{})
	require.NoError(t, err)

	msg, err := d.Render(Notification{Kind: KindOTP, To: "a@b.c", Data: map[string]string{"OTP": "654321"}})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "654321")
	assert.Equal(t, "Your OTP for Login", msg.Subject)

	msg, err = d.Render(Notification{Kind: KindConnectionAccepted, To: "a@b.c", Data: map[string]string{"RecipientName": "Grace"}})
	require.NoError(t, err)
	assert.Equal(t, "Grace accepted your connection request", msg.Subject)
	assert.NotContains(t, msg.HTML, "no value")
}

func TestRenderErrors(t *testing.T) {
	d, err := NewDispatcher(&recordingSender{})
	require.NoError(t, err)

	_, err = d.Render(Notification{Kind: "nope", To: "a@b.c"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = d.Render(Notification{Kind: KindWelcome, To: "  "})
	assert.Error(t, err)
}

func TestDispatchSends(t *testing.T) {
	s := &recordingSender{}
	d, err := NewDispatcher(s)
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), Notification{
		Kind: KindShortlisted, To: "ada@example.com",
		Data: map[string]string{"Name": "Ada", "JobTitle": "SRE"},
	}))
	require.Len(t, s.sent, 1)
	assert.Contains(t, s.sent[0].HTML, "SRE")

	s.err = errors.New("smtp down")
	err = d.Dispatch(context.Background(), Notification{Kind: KindWelcome, To: "ada@example.com"})
	assert.EqualError(t, err, "smtp down")
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(ProviderConfig{Provider: "log"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = NewSender(ProviderConfig{Provider: "smtp", SMTP: SMTPConfig{Host: "localhost"}}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	s, err = NewSender(ProviderConfig{Provider: "sendgrid", SendgridAPIKey: "key"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, s)

	_, err = NewSender(ProviderConfig{Provider: "pigeon"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSMTPCompose(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", From: "noreply@quixjob.dev", FromName: "QuiX Job"})
	assert.Equal(t, "587", s.cfg.Port)

	raw := string(s.compose(Message{To: "ada@example.com", Subject: "Hi", HTML: "<p>x</p>"}))
	assert.Contains(t, raw, "From: \"QuiX Job\" <noreply@quixjob.dev>\r\n")
	assert.Contains(t, raw, "To: ada@example.com\r\n")
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "\r\n\r\n<p>x</p>")
}

func TestSMTPComposeEncodesHeaders(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", From: "noreply@quixjob.dev", FromName: "QuiX Jöb"})

	raw := string(s.compose(Message{To: "ada@example.com", Subject: "Zoë accepted your connection request", HTML: "<p>x</p>"}))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
	assert.Contains(t, raw, "From: =?utf-8?q?QuiX_J=C3=B6b?= <noreply@quixjob.dev>\r\n")
	assert.NotContains(t, raw, "Zoë")
}

func TestRenderFlattensHeaderInjection(t *testing.T) {
	d, err := NewDispatcher(&recordingSender{})
	require.NoError(t, err)

	msg, err := d.Render(Notification{
		Kind: KindConnectionAccepted,
		To:   "ada@example.com",
		Data: map[string]string{"RecipientName": "Eve\r\nBcc: victim@example.com", "ProfileURL": "http://x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Eve  Bcc: victim@example.com accepted your connection request", msg.Subject)

	raw := string(NewSMTPSender(SMTPConfig{Host: "h", From: "f@example.com"}).compose(msg))
	header, _, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	for _, line := range strings.Split(header, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
	}
	assert.NotContains(t, header, "\n\n")
}
