package verify

import (
	"sync"
	"time"

	"github.com/veracity-tools/veracity/internal/model"
)

// SessionStore holds verification sessions in memory. Each store is
// independent; two engines with separate stores never see each other's
// sessions. Safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.VerificationSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]model.VerificationSession)}
}

// Put stores a snapshot of the session. The stored copy does not alias the
// caller's Results slice.
func (s *SessionStore) Put(session model.VerificationSession) {
	session.Results = append([]model.VerificationResult(nil), session.Results...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
}

// Get returns a copy of the session with the given id.
func (s *SessionStore) Get(id string) (model.VerificationSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.VerificationSession{}, false
	}
	session.Results = append([]model.VerificationResult(nil), session.Results...)
	return session, true
}

// All returns copies of every stored session, in no particular order.
func (s *SessionStore) All() []model.VerificationSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.VerificationSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		session.Results = append([]model.VerificationResult(nil), session.Results...)
		out = append(out, session)
	}
	return out
}

// Cleanup removes terminal sessions that ended more than retention ago and
// reports how many were removed. Running sessions are never touched.
func (s *SessionStore) Cleanup(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.Status == model.StatusRunning {
			continue
		}
		ended := session.StartTime
		if session.EndTime != nil {
			ended = *session.EndTime
		}
		if ended.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
