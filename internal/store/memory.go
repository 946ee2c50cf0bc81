package store

import (
	"context"
	"sync"
)

// Memory keeps documents in process memory. Useful for tests and for
// running without any external store; contents vanish on restart.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]string)}
}

func (m *Memory) Read(_ context.Context, roomID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docs[roomID], nil
}

func (m *Memory) Write(_ context.Context, roomID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[roomID] = text
	return nil
}
