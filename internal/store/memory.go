package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used by tests and the
// create_test_user tool; it is not shared across processes.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string]json.RawMessage)}
}

func (b *MemoryBackend) GetDoc(_ context.Context, key string) (json.RawMessage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.docs[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, nil
}

func (b *MemoryBackend) SetDoc(_ context.Context, key string, value json.RawMessage) error {
	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[key] = cp
	return nil
}

func (b *MemoryBackend) DeleteDoc(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.docs, key)
	return nil
}

func (b *MemoryBackend) ListKeys(_ context.Context, table string) ([]string, error) {
	prefix := table + "/"
	b.mu.RLock()
	defer b.mu.RUnlock()
	var keys []string
	for k := range b.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *MemoryBackend) Ping(context.Context) error {
	return nil
}
