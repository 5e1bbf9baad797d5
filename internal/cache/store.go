package cache

import (
	"context"

	"ynabviz/internal/blob"
)

// Backend is a store that can both write and serve objects.
type Backend interface {
	blob.ObjectWriter
	blob.ObjectReader
}

// Store puts an LRU in front of a backend. Writes go through and drop the
// cached copy so a refresh is visible on the next read.
type Store struct {
	backend Backend
	lru     *LRU
}

var (
	_ blob.ObjectWriter = (*Store)(nil)
	_ blob.ObjectReader = (*Store)(nil)
)

func NewStore(backend Backend, lru *LRU) *Store {
	return &Store{backend: backend, lru: lru}
}

func (s *Store) Put(ctx context.Context, obj blob.Object) error {
	err := s.backend.Put(ctx, obj)
	s.lru.Delete(obj.Key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (blob.Object, error) {
	if obj, ok := s.lru.Get(key); ok {
		return obj, nil
	}
	obj, err := s.backend.Get(ctx, key)
	if err != nil {
		return blob.Object{}, err
	}
	s.lru.Set(obj)
	return obj, nil
}

func (s *Store) Stats() Stats {
	return s.lru.Stats()
}
