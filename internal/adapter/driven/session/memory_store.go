package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// MemoryStore guarda as sessões em memória. Tokens expirados são removidos na leitura
// e periodicamente pelo janitor.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMemoryStore creates a store whose sessions live for ttl.
func NewMemoryStore(ttl time.Duration, logger zerolog.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]entity.Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

var _ repository.SessionRepository = (*MemoryStore)(nil)

// Create issues a fresh token for s and stores it.
func (m *MemoryStore) Create(_ context.Context, s entity.Session) (entity.Session, error) {
	now := m.now()
	s.Token = uuid.NewString()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session for token, or ErrSessionNotFound when it is unknown or expired.
func (m *MemoryStore) Get(_ context.Context, token string) (entity.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return entity.Session{}, types.ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return entity.Session{}, types.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes token. Unknown tokens are ignored.
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every expired session and returns how many were dropped.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// RunJanitor varre as sessões expiradas a cada interval até ctx ser cancelado.
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug().Int("removed", n).Msg("Expired sessions removed")
			}
		}
	}
}
