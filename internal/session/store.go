// Package session holds the transient login state for the multi-user
// variant. Tokens are opaque and live only in process memory; the record
// store knows nothing about sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const cleanupInterval = 5 * time.Minute

// Session binds an opaque bearer token to an account for a limited time
type Session struct {
	Token     string
	AccountID int32
	ExpiresAt time.Time
}

// Store is an in-memory, TTL-bound session store. It is safe for
// concurrent use.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewStore creates a session store whose sessions expire after ttl.
// A background goroutine evicts expired sessions until Stop is called.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Issue creates a new session for an account and returns its token
func (s *Store) Issue(accountID int32) *Session {
	session := &Session{
		Token:     uuid.New().String(),
		AccountID: accountID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// Resolve returns the account bound to a token. Resolving a live session
// extends its expiry (rolling sessions).
func (s *Store) Resolve(token string) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return 0, false
	}

	session.ExpiresAt = time.Now().Add(s.ttl)
	return session.AccountID, true
}

// Revoke deletes a session. Revoking an unknown token is a no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Stop terminates the cleanup goroutine
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, session := range s.sessions {
				if now.After(session.ExpiresAt) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}
