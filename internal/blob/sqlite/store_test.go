package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"ynabviz/internal/blob"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data", "objects.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetReplace(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, blob.Object{Key: "dashboard.html", Body: []byte("first"), ContentType: "text/html"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, blob.Object{Key: "dashboard.html", Body: []byte("second"), ContentType: "text/html"}); err != nil {
		t.Fatalf("put again: %v", err)
	}

	obj, err := s.Get(ctx, "dashboard.html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(obj.Body) != "second" || obj.ContentType != "text/html" {
		t.Fatalf("expected replaced object, got %+v", obj)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Fatalf("expected one row, got %d", n)
	}
}

func TestGetMissing(t *testing.T) {
	s := newStore(t)
	if _, err := s.Get(context.Background(), "nope.html"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(context.Background(), blob.Object{}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestConcurrentPuts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Put(ctx, blob.Object{Key: fmt.Sprintf("cat-%d.html", i), Body: []byte("x"), ContentType: "text/html"})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent put: %v", err)
		}
	}
	if n, _ := s.Count(ctx); n != 10 {
		t.Fatalf("expected 10 rows, got %d", n)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.db")
	s1, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	_ = s1.Put(context.Background(), blob.Object{Key: "a.html", Body: []byte("a")})
	_ = s1.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if _, err := s2.Get(context.Background(), "a.html"); err != nil {
		t.Fatalf("object lost across reopen: %v", err)
	}

	var version int
	var dirty bool
	if err := s2.db.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("expected clean schema version 1, got %d dirty=%v", version, dirty)
	}
}
