package cache

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryStore)
}

type memoryStore struct {
	lru *expirable.LRU[string, []byte]
}

func newMemoryStore(opts Options) (Store, error) {
	size := opts.Size
	if size <= 0 {
		size = 1
	}
	return &memoryStore{lru: expirable.NewLRU[string, []byte](size, nil, opts.TTL)}, nil
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	return m.lru.Get(key)
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) {
	m.lru.Add(key, value)
}

func (m *memoryStore) Len(context.Context) int {
	return m.lru.Len()
}

func (m *memoryStore) Close() error {
	return nil
}
