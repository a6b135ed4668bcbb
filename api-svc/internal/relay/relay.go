// Package relay forwards chat events between connected users.
//
// Delivery is at most once and best effort: a message for a user with no
// registered connection is dropped, and the sender is not told. Durable
// history is kept separately by the message log.
package relay

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	EventRegister = "register_user"
	EventSend     = "send_message"
	EventReceive  = "receive_message"
)

var (
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrEmptyMessage     = errors.New("message must be non-empty text")
	ErrNotRegistered    = errors.New("connection is not registered")
	ErrIdentityMismatch = errors.New("identity does not match the session")
)

// Event is the wire frame: {"event": "...", "data": ...}.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type ChatMessage struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type Relay struct {
	registry *Registry
	log      *zap.Logger
}

func New(registry *Registry, log *zap.Logger) *Relay {
	return &Relay{registry: registry, log: log.Named("relay")}
}

// Session is one connection opened by an authenticated user.
type Session struct {
	relay      *Relay
	conn       Conn
	userID     string
	registered string
}

func (r *Relay) Open(conn Conn, userID string) *Session {
	return &Session{relay: r, conn: conn, userID: userID}
}

// Handle processes one inbound frame. Errors describe frames that were
// ignored; the connection stays usable.
func (s *Session) Handle(frame []byte) error {
	var ev Event
	if err := json.Unmarshal(frame, &ev); err != nil {
		return ErrMalformedFrame
	}

	switch ev.Event {
	case EventRegister:
		return s.register(ev.Data)
	case EventSend:
		return s.send(ev.Data)
	default:
		return ErrUnknownEvent
	}
}

func (s *Session) register(data json.RawMessage) error {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil {
		return ErrMalformedFrame
	}
	if userID != s.userID {
		s.relay.log.Warn("register rejected",
			zap.String("conn", s.conn.ID()),
			zap.String("session_user", s.userID),
			zap.String("claimed_user", userID),
		)
		return ErrIdentityMismatch
	}

	if prev := s.relay.registry.Register(userID, s.conn); prev != nil {
		s.relay.log.Debug("connection displaced", zap.String("user", userID), zap.String("conn", prev.ID()))
	}
	s.registered = userID
	s.relay.log.Debug("user registered", zap.String("user", userID), zap.String("conn", s.conn.ID()))
	return nil
}

func (s *Session) send(data json.RawMessage) error {
	if s.registered == "" {
		return ErrNotRegistered
	}

	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ErrMalformedFrame
	}
	if msg.Sender != s.registered {
		return ErrIdentityMismatch
	}
	if strings.TrimSpace(msg.Message) == "" {
		return ErrEmptyMessage
	}

	target, ok := s.relay.registry.Lookup(msg.Recipient)
	if !ok {
		s.relay.log.Debug("recipient offline, dropped", zap.String("recipient", msg.Recipient))
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := target.Send(Event{Event: EventReceive, Data: payload}); err != nil {
		s.relay.log.Warn("forward failed", zap.String("recipient", msg.Recipient), zap.Error(err))
	}
	return nil
}

// Close unregisters the connection.
func (s *Session) Close() {
	for _, userID := range s.relay.registry.Remove(s.conn) {
		s.relay.log.Debug("user disconnected", zap.String("user", userID), zap.String("conn", s.conn.ID()))
	}
}
