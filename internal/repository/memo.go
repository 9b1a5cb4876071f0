package repository

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo caches the result of a keyed read for the lifetime of the process.
// Concurrent first reads of one key share a single call; failed reads are
// not stored, so a later call retries.
type Memo[V any] struct {
	read func(ctx context.Context, key string) (V, error)

	mu     sync.RWMutex
	values map[string]V
	group  singleflight.Group
}

// NewMemo wraps read with a per-key cache
func NewMemo[V any](read func(ctx context.Context, key string) (V, error)) *Memo[V] {
	return &Memo[V]{
		read:   read,
		values: make(map[string]V),
	}
}

// Get returns the stored value for key, reading it on first use. The shared
// read does not observe caller cancellation; each caller stops waiting when
// its own ctx is done.
func (m *Memo[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := m.lookup(key); ok {
		return v, nil
	}

	readCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (interface{}, error) {
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		v, err := m.read(readCtx, key)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.values[key] = v
		m.mu.Unlock()
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Cached reports whether key has a stored value
func (m *Memo[V]) Cached(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

func (m *Memo[V]) lookup(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}
