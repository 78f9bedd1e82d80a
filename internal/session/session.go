// Package session holds the operator session that is passed explicitly to
// the components that need it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session describes one operator's run of the console
type Session struct {
	ID        string
	Operator  string
	Language  string
	StartedAt time.Time

	mu      sync.Mutex
	endedAt time.Time
}

// New starts a session for operator
func New(operator, language string) *Session {
	if language == "" {
		language = "en"
	}
	return &Session{
		ID:        uuid.NewString(),
		Operator:  operator,
		Language:  language,
		StartedAt: time.Now(),
	}
}

// End marks the session as finished. Later calls keep the first end time.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endedAt.IsZero() {
		s.endedAt = time.Now()
	}
}

// Active reports whether End has not been called
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt.IsZero()
}

// Duration is how long the session has run, or ran if ended
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.endedAt.Sub(s.StartedAt)
}

// ShortID is the first block of the session id, for status lines
func (s *Session) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}
