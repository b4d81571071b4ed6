// Package store provides the user.Store implementations: an in-memory map
// for tests and PostgreSQL for deployments.
package store

import (
	"context"
	"sync"

	"feria/internal/user"
	"feria/pkg/platform/sentinel"
)

// Memory is a mutex-guarded map keyed by subject ID.
type Memory struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]user.User)}
}

func (m *Memory) Insert(ctx context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.SubjectID]; exists {
		return sentinel.ErrConflict
	}
	m.users[u.SubjectID] = u
	return nil
}

func (m *Memory) FindBySubject(ctx context.Context, subjectID string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[subjectID]
	if !ok {
		return user.User{}, sentinel.ErrNotFound
	}
	return u, nil
}

func (m *Memory) SetSeller(ctx context.Context, subjectID string, isSeller bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[subjectID]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.IsSeller = isSeller
	m.users[subjectID] = u
	return nil
}

// Len reports how many records exist. Tests use it to prove an operation
// performed no writes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
