// Package storage provides the durable key-value slots the wallet persists
// into, with Redis, PostgreSQL and in-memory backends.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound indicates the requested slot has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store holding opaque string blobs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV constructs an in-memory store for tests and dev mode.
func NewMemoryKV() KV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
