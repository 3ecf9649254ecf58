// Package store holds the interpretation text implementations behind the
// chart.InterpretationStore port: an embedded SQLite database for the
// service and an in-memory map for tests and ephemeral deployments. Both
// are keyed by flat "category:detail" strings and safe for concurrent
// readers; writes happen only through the out-of-band seed procedure.
package store

import (
	"context"
	"sync"
)

// Memory is a concurrency-safe in-memory interpretation store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// NewMemoryFromMap copies entries into a new store.
func NewMemoryFromMap(entries map[string]string) *Memory {
	m := NewMemory()
	for k, v := range entries {
		m.data[k] = v
	}
	return m
}

// Lookup returns the text for key. Absence is reported, not an error.
func (m *Memory) Lookup(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.data[key]
	return text, ok, nil
}

// Put inserts text for key unless the key already holds content, matching
// the seed procedure's insert-if-absent behavior.
func (m *Memory) Put(_ context.Context, key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		m.data[key] = text
	}
	return nil
}
