package keyvalue

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepository keeps values in process memory. Used when no state file is
// configured and in tests.
type MemoryRepository struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[key]
	return v, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.m[key] = value
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	for _, k := range keys {
		delete(r.m, k)
	}
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.m), nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	clear(r.m)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, set map[string]string, del ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range del {
		delete(r.m, k)
	}
	maps.Copy(r.m, set)
	return nil
}
