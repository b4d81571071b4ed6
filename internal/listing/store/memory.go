// Package store provides the listing.Store implementations.
package store

import (
	"context"
	"sync"

	"feria/internal/listing"
	"feria/pkg/platform/sentinel"
)

// Memory is a mutex-guarded map keyed by listing ID.
type Memory struct {
	mu       sync.RWMutex
	listings map[string]listing.Listing
}

func NewMemory() *Memory {
	return &Memory{listings: make(map[string]listing.Listing)}
}

func (m *Memory) Insert(ctx context.Context, l listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.listings[l.ID]; exists {
		return sentinel.ErrConflict
	}
	m.listings[l.ID] = l
	return nil
}

func (m *Memory) FindByID(ctx context.Context, id string) (listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.listings[id]
	if !ok {
		return listing.Listing{}, sentinel.ErrNotFound
	}
	return l, nil
}

// Len reports how many listings exist. Tests use it to prove an operation
// performed no writes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listings)
}
