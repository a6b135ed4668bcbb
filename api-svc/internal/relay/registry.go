package relay

import "sync"

// Conn is one live client connection.
type Conn interface {
	ID() string
	Send(ev Event) error
}

// Registry maps a user to its single active connection. Registering again
// displaces the previous connection (last write wins).
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Conn)}
}

// Register binds userID to c and returns the connection it displaced, if any.
func (r *Registry) Register(userID string, c Conn) Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.conns[userID]
	r.conns[userID] = c
	if prev != nil && prev.ID() == c.ID() {
		return nil
	}
	return prev
}

func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[userID]
	return c, ok
}

// Remove drops every entry still pointing at c. An entry already taken over
// by a newer connection is left alone.
func (r *Registry) Remove(c Conn) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for userID, cur := range r.conns {
		if cur.ID() == c.ID() {
			delete(r.conns, userID)
			removed = append(removed, userID)
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
