package relay

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	id string

	mu     sync.Mutex
	events []Event
}

func (r *recorder) ID() string { return r.id }

func (r *recorder) Send(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) received() []ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ChatMessage
	for _, ev := range r.events {
		if ev.Event != EventReceive {
			continue
		}
		var m ChatMessage
		if err := json.Unmarshal(ev.Data, &m); err == nil {
			out = append(out, m)
		}
	}
	return out
}

func frame(t *testing.T, event string, data any) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(Event{Event: event, Data: raw})
	require.NoError(t, err)
	return b
}

func open(t *testing.T, r *Relay, connID, userID string) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{id: connID}
	s := r.Open(rec, userID)
	require.NoError(t, s.Handle(frame(t, EventRegister, userID)))
	return s, rec
}

func TestRelay_ForwardsToRecipientOnly(t *testing.T) {
	r := New(NewRegistry(), zap.NewNop())
	alice, aliceRec := open(t, r, "c1", "alice")
	_, bobRec := open(t, r, "c2", "bob")

	msg := ChatMessage{Sender: "alice", Recipient: "bob", Message: "hi"}
	require.NoError(t, alice.Handle(frame(t, EventSend, msg)))

	assert.Equal(t, []ChatMessage{msg}, bobRec.received())
	assert.Empty(t, aliceRec.received())
}

func TestRelay_DropsForOfflineRecipient(t *testing.T) {
	r := New(NewRegistry(), zap.NewNop())
	alice, _ := open(t, r, "c1", "alice")

	err := alice.Handle(frame(t, EventSend, ChatMessage{Sender: "alice", Recipient: "ghost", Message: "hi"}))
	assert.NoError(t, err)
}

func TestRelay_RejectsBadFrames(t *testing.T) {
	r := New(NewRegistry(), zap.NewNop())
	_, bobRec := open(t, r, "c2", "bob")

	unregistered := r.Open(&recorder{id: "c0"}, "alice")
	assert.ErrorIs(t, unregistered.Handle(frame(t, EventSend, ChatMessage{Sender: "alice", Recipient: "bob", Message: "x"})), ErrNotRegistered)

	alice, _ := open(t, r, "c1", "alice")
	assert.ErrorIs(t, alice.Handle([]byte("{not json")), ErrMalformedFrame)
	assert.ErrorIs(t, alice.Handle(frame(t, "typing", "x")), ErrUnknownEvent)
	assert.ErrorIs(t, alice.Handle(frame(t, EventSend, ChatMessage{Sender: "alice", Recipient: "bob", Message: "   "})), ErrEmptyMessage)
	assert.ErrorIs(t, alice.Handle(frame(t, EventSend, map[string]any{"sender": "alice", "recipient": "bob", "message": 42})), ErrMalformedFrame)
	assert.ErrorIs(t, alice.Handle(frame(t, EventSend, ChatMessage{Sender: "bob", Recipient: "bob", Message: "spoof"})), ErrIdentityMismatch)

	assert.Empty(t, bobRec.received())
}

func TestRelay_RegisterMustMatchSession(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, zap.NewNop())

	s := r.Open(&recorder{id: "c1"}, "alice")
	assert.ErrorIs(t, s.Handle(frame(t, EventRegister, "bob")), ErrIdentityMismatch)
	_, ok := reg.Lookup("bob")
	assert.False(t, ok)
}

func TestRelay_LatestRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, zap.NewNop())
	alice, _ := open(t, r, "c1", "alice")
	tab1, tab1Rec := open(t, r, "tab-1", "bob")
	_, tab2Rec := open(t, r, "tab-2", "bob")

	require.NoError(t, alice.Handle(frame(t, EventSend, ChatMessage{Sender: "alice", Recipient: "bob", Message: "one"})))
	assert.Empty(t, tab1Rec.received())
	assert.Len(t, tab2Rec.received(), 1)

	// the displaced tab closing must not unregister the newer one
	tab1.Close()
	require.NoError(t, alice.Handle(frame(t, EventSend, ChatMessage{Sender: "alice", Recipient: "bob", Message: "two"})))
	assert.Len(t, tab2Rec.received(), 2)
}

func TestRegistry_CloseRemoves(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, zap.NewNop())
	s, _ := open(t, r, "c1", "alice")
	require.Equal(t, 1, reg.Len())

	s.Close()
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := &recorder{id: fmt.Sprintf("c%d", i)}
			user := fmt.Sprintf("u%d", i%5)
			reg.Register(user, c)
			reg.Lookup(user)
			reg.Remove(c)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, reg.Len(), 5)
}
