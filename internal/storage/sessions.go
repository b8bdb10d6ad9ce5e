package storage

import (
	"sync"

	"github.com/aliskhannn/quiz-bot/internal/service"
)

// SessionStore provides in-memory storage for active quiz sessions.
// It keeps at most one session per user and owns the mapping from a
// presented question's token back to its session.
//
// The store guards only its maps; per-session state is guarded by the
// session itself, so sessions of different users never block each other.
type SessionStore struct {
	mu      sync.RWMutex
	byUser  map[int64]*service.Session
	byToken map[string]*service.Session
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		byUser:  make(map[int64]*service.Session),
		byToken: make(map[string]*service.Session),
	}
}

// Replace installs s as the user's current session and returns the
// displaced session, if there was one. The caller is responsible for
// cancelling the displaced session's pending timer.
func (s *SessionStore) Replace(sess *service.Session) *service.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.byUser[sess.UserID()]
	s.byUser[sess.UserID()] = sess
	return old
}

// ByUser returns the user's current session.
func (s *SessionStore) ByUser(userID int64) (*service.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byUser[userID]
	return sess, ok
}

// ByToken returns the session that presented the question with this token.
func (s *SessionStore) ByToken(token string) (*service.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byToken[token]
	return sess, ok
}

// BindToken correlates an outstanding question token with its session.
func (s *SessionStore) BindToken(token string, sess *service.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = sess
}

// ReleaseToken drops a token binding. Releasing an unknown token is a no-op.
func (s *SessionStore) ReleaseToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

// Remove deletes sess only if it is still the user's current session, so a
// completion racing a fresh quiz start cannot tear down the new session.
func (s *SessionStore) Remove(sess *service.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byUser[sess.UserID()] != sess {
		return false
	}
	delete(s.byUser, sess.UserID())
	return true
}

// IsCurrent reports whether sess is still the user's current session.
func (s *SessionStore) IsCurrent(sess *service.Session) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUser[sess.UserID()] == sess
}
