package session

import (
	"context"
	"sync"

	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
)

// Session is the authenticated identity plus its bearer credential. The
// client performs no expiry check; the server is the source of truth for
// token validity.
type Session struct {
	User  user.User
	Token string
}

// Store persists the current session between runs. Load returns nil when
// no session is stored.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// Manager is the single authoritative writer of the current session.
// Views and services read through Current; only login and logout go
// through Establish and Reset.
type Manager struct {
	mu      sync.Mutex
	store   Store
	current *Session
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Restore loads a previously persisted session, if any.
func (m *Manager) Restore(ctx context.Context) error {
	s, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

// Establish records a freshly authenticated session and persists it.
func (m *Manager) Establish(ctx context.Context, s Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return nil
}

// Reset clears both the in-memory session and the persisted copy.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return nil
}

// Current returns the active session, or nil when logged out. The returned
// value is a copy; mutating it does not affect the manager.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}

// MemoryStore keeps the session in process memory only. Used by tests and
// by callers that opt out of persistence.
type MemoryStore struct {
	mu sync.Mutex
	s  *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, nil
	}
	copied := *m.s
	return &copied, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}
