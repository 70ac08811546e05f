package userdata

import (
	"context"
	"slices"
	"sync"
	"time"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Data),
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*Data, error) {
	_ = ctx
	s.mu.RLock()
	d, ok := s.items[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return clone(d), nil
}

func (s *MemoryStore) Upsert(ctx context.Context, d *Data) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	d.UpdatedAt = time.Now()
	s.items[d.UserID] = *clone(*d)
	return nil
}

func clone(d Data) *Data {
	d.WatchedTags = slices.Clone(d.WatchedTags)
	d.IgnoredTags = slices.Clone(d.IgnoredTags)
	d.Pinned = slices.Clone(d.Pinned)
	return &d
}
