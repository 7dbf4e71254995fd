package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

type entry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart; votes are durable so a restart only forces a re-login.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      defaultTTL,
		now:      time.Now,
	}
}

func (s *MemoryStore) Establish(identity domain.Identity) string {
	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{
		identity:  identity,
		expiresAt: s.now().Add(s.ttl),
	}
	return token
}

func (s *MemoryStore) Current(token string) (domain.Identity, bool) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return domain.Identity{}, false
	}
	if s.now().After(e.expiresAt) {
		s.Destroy(token)
		return domain.Identity{}, false
	}
	return e.identity, true
}

func (s *MemoryStore) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(b)
}

var _ ports.SessionStore = (*MemoryStore)(nil)
