package repository

import (
	"context"
	"sync"
)

type memoryKV struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryKV returns a process-local KVRepository.
func NewMemoryKV() KVRepository {
	return &memoryKV{items: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.items[key] = v
	return nil
}
