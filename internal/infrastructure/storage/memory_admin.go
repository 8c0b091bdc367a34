package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
)

// Operator sessions live only as long as the process; an operator logs in
// again after a restart.
const sessionTimeout = 24 * time.Hour

type memoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
}

// NewMemoryAdminRepository builds the in-memory operator session store.
func NewMemoryAdminRepository() repository.AdminRepository {
	return &memoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
	}
}

// CreateSession stores a fresh operator session.
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = time.Now()
	m.sessions[session.UserID] = session
	return nil
}

// DeleteSession removes the session (logout).
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin reports whether the user has a live, non-expired session.
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}
	if time.Since(session.LastActivity) > sessionTimeout {
		return false, nil
	}
	return session.IsAdmin, nil
}

// LogAction appends an audit record.
func (m *memoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}
