package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ynabviz/internal/blob"
)

// Store keeps objects in process memory.
type Store struct {
	mu      sync.Mutex
	objects map[string]blob.Object
	writes  int
}

var (
	_ blob.ObjectWriter = (*Store)(nil)
	_ blob.ObjectReader = (*Store)(nil)
)

func New() *Store {
	return &Store{objects: map[string]blob.Object{}}
}

// Put stores a copy of the object, replacing any previous one.
func (s *Store) Put(_ context.Context, obj blob.Object) error {
	if obj.Key == "" {
		return fmt.Errorf("put: empty key")
	}
	obj.Body = append([]byte(nil), obj.Body...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = obj
	s.writes++
	return nil
}

func (s *Store) Get(_ context.Context, key string) (blob.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return blob.Object{}, fmt.Errorf("%s: %w", key, blob.ErrNotFound)
	}
	obj.Body = append([]byte(nil), obj.Body...)
	return obj, nil
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes counts successful Put calls, overwrites included.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
