// Package memory implements an in-memory key-value Store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jamaah/internal/kv/core"
)

// Store implements core.Store backed by process memory.
type Store struct {
	mu      sync.RWMutex
	entries map[string]core.Entry
	now     func() time.Time
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]core.Entry), now: func() time.Time { return time.Now().UTC() }}
}

// Driver returns the driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Get returns a copy of the value under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return cloneBytes(e.Value), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = core.Entry{Key: key, Value: cloneBytes(value), UpdatedAt: s.now()}
	return nil
}

// Delete removes key returning true if it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return ok, nil
}

// GetByPrefix returns all entries matching prefix.
func (s *Store) GetByPrefix(_ context.Context, prefix string) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Entry, 0, len(s.entries))
	for k, e := range s.entries {
		if strings.HasPrefix(k, prefix) {
			e.Value = cloneBytes(e.Value)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
