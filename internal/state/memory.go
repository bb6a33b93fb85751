package state

import (
	"context"
	"sync"
)

// MemoryStore is an in-process SnapshotStore used by tests and local tooling.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// FailWrites makes Save return an error, for exercising the
	// best-effort persistence path.
	FailWrites bool
	SaveErr    error
}

// NewMemoryStore builds an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	if m.FailWrites {
		if m.SaveErr != nil {
			return m.SaveErr
		}
		return errWriteFailed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Seed places a raw blob at key, bypassing Save side effects.
func (m *MemoryStore) Seed(key string, blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = blob
}
