package relay

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrNoSession is returned when the recipient has no connected session.
var ErrNoSession = errors.New("no active session for user")

// Session is a single connected client. Writes are serialized per connection
// as required by the websocket package.
type Session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes a notification to the session.
func (s *Session) Send(n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(n)
}

// Registry holds the connected session per user. A user reconnecting replaces
// their previous session, so at most one handler observes each event.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add registers a connection for the user, closing any previous one.
func (r *Registry) Add(userID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.sessions[userID]; ok {
		_ = prev.conn.Close()
	}
	r.sessions[userID] = &Session{conn: conn}
}

// Remove tears down the user's session if it is the given connection. A
// session replaced by a reconnect is left alone.
func (r *Registry) Remove(userID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok && s.conn == conn {
		delete(r.sessions, userID)
	}
}

// Send delivers a notification to the user's session, if any.
func (r *Registry) Send(userID string, n Notification) error {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	if !ok {
		return ErrNoSession
	}
	return s.Send(n)
}
