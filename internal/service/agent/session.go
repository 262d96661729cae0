package agent

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newSessionID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Session is one conversation. History holds user, assistant and tool-result
// messages only; the system prompt is rebuilt on every model call.
type Session struct {
	ID        string
	CreatedAt time.Time

	// turn serializes Send calls on the same session.
	turn sync.Mutex

	mu      sync.RWMutex
	history []core.Message
}

func NewSession() *Session {
	now := time.Now()
	return &Session{ID: newSessionID(now), CreatedAt: now}
}

func newSessionWithID(id string) *Session {
	s := NewSession()
	s.ID = id
	return s
}

// History returns a copy of the conversation so far.
func (s *Session) History() []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Reset empties the history. Calling it on an empty session is a no-op.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

func (s *Session) append(msgs ...core.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msgs...)
}

// SessionStore keeps sessions by id for the lifetime of the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session with id, creating it on first use.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = newSessionWithID(id)
		s.sessions[id] = sess
	}
	return sess
}

// Reset clears the history of the session with id, if any.
func (s *SessionStore) Reset(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if ok {
		sess.Reset()
	}
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
