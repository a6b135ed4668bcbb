// Package mailer renders notification emails and hands them to a Sender.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"unicode"
)

type Kind string

const (
	KindOTP                Kind = "otp"
	KindWelcome            Kind = "welcome"
	KindShortlisted        Kind = "shortlisted"
	KindNotShortlisted     Kind = "not_shortlisted"
	KindConnectionAccepted Kind = "connection_accepted"
	KindComment            Kind = "comment"
)

// Notification is the transport-neutral event api-svc emits. It is sent
// as-is over Kafka to mail-svc.
type Notification struct {
	Kind Kind              `json:"kind"`
	To   string            `json:"to"`
	Data map[string]string `json:"data,omitempty"`
}

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var ErrUnknownKind = errors.New("unknown notification kind")

//go:embed templates/*.html
var templateFS embed.FS

type kindSpec struct {
	file    string
	subject func(d map[string]string) string
	text    func(d map[string]string) string
}

var kinds = map[Kind]kindSpec{
	KindOTP: {
		file:    "otp.html",
		subject: func(map[string]string) string { return "Your OTP for Login" },
		text:    func(d map[string]string) string { return "Your verification code is " + d["OTP"] },
	},
	KindWelcome: {
		file:    "welcome.html",
		subject: func(map[string]string) string { return "Welcome to QuiX Job" },
		text:    func(d map[string]string) string { return "Welcome to QuiX Job, " + d["Name"] + "!" },
	},
	KindShortlisted: {
		file:    "shortlisted.html",
		subject: func(map[string]string) string { return "Congratulations! You Are Shortlisted" },
		text: func(d map[string]string) string {
			return fmt.Sprintf("Hi %s, you have been shortlisted for %s.", d["Name"], d["JobTitle"])
		},
	},
	KindNotShortlisted: {
		file:    "not_shortlisted.html",
		subject: func(map[string]string) string { return "Update on Your Job Application" },
		text: func(d map[string]string) string {
			return fmt.Sprintf("Hi %s, your application for %s was not shortlisted.", d["Name"], d["JobTitle"])
		},
	},
	KindConnectionAccepted: {
		file: "connection_accepted.html",
		subject: func(d map[string]string) string {
			return d["RecipientName"] + " accepted your connection request"
		},
		text: func(d map[string]string) string {
			return fmt.Sprintf("%s accepted your connection request: %s", d["RecipientName"], d["ProfileURL"])
		},
	},
	KindComment: {
		file:    "comment.html",
		subject: func(map[string]string) string { return "New Comment on Your Post" },
		text: func(d map[string]string) string {
			return fmt.Sprintf("%s commented on your post: %s", d["CommenterName"], d["Comment"])
		},
	},
}

// Dispatcher renders notifications and sends them.
type Dispatcher struct {
	sender Sender
	tmpl   *template.Template
}

func NewDispatcher(sender Sender) (*Dispatcher, error) {
	tmpl, err := template.New("mail").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Dispatcher{sender: sender, tmpl: tmpl}, nil
}

func (d *Dispatcher) Render(n Notification) (Message, error) {
	spec, ok := kinds[n.Kind]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}
	if strings.TrimSpace(n.To) == "" {
		return Message{}, errors.New("notification has no recipient")
	}

	data := n.Data
	if data == nil {
		data = map[string]string{}
	}

	var buf bytes.Buffer
	if err := d.tmpl.ExecuteTemplate(&buf, spec.file, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", n.Kind, err)
	}

	return Message{
		To:      n.To,
		Subject: headerSafe(spec.subject(data)),
		HTML:    buf.String(),
		Text:    spec.text(data),
	}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	msg, err := d.Render(n)
	if err != nil {
		return err
	}
	return d.sender.Send(ctx, msg)
}

// headerSafe flattens control characters so user supplied text cannot break
// out of a single header line.
func headerSafe(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s))
}
