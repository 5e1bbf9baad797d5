package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/blob"
	"ynabviz/internal/blob/memory"
)

func obj(key, body string) blob.Object {
	return blob.Object{Key: key, Body: []byte(body), ContentType: "text/html"}
}

func TestLRUEvictsBySize(t *testing.T) {
	c := NewLRU(10, time.Minute)
	c.Set(obj("a", "1234"))
	c.Set(obj("b", "1234"))
	_, _ = c.Get("a") // a becomes most recent
	c.Set(obj("c", "1234"))

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 8, c.Stats().Bytes)

	c.Set(obj("huge", "01234567890"))
	_, ok := c.Get("huge")
	assert.False(t, ok)
}

func TestLRUExpires(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	c := NewLRU(100, time.Minute)
	c.now = func() time.Time { return now }

	c.Set(obj("a", "x"))
	_, ok := c.Get("a")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Entries)
}

func TestLRUReplaceKeepsSizeAccurate(t *testing.T) {
	c := NewLRU(100, time.Minute)
	c.Set(obj("a", "12345"))
	c.Set(obj("a", "12"))
	assert.Equal(t, Stats{Entries: 1, Bytes: 2}, c.Stats())
}

func TestStoreInvalidatesOnPut(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), NewLRU(1<<20, time.Hour))

	require.NoError(t, s.Put(ctx, obj("dashboard.html", "v1")))
	got, err := s.Get(ctx, "dashboard.html")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got.Body))

	_, err = s.Get(ctx, "dashboard.html")
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.Stats().Hits)

	require.NoError(t, s.Put(ctx, obj("dashboard.html", "v2")))
	got, err = s.Get(ctx, "dashboard.html")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got.Body))
}

func TestStoreMissPassesThroughNotFound(t *testing.T) {
	s := NewStore(memory.New(), NewLRU(1<<20, time.Hour))
	_, err := s.Get(context.Background(), "missing.html")
	assert.True(t, errors.Is(err, blob.ErrNotFound))
}
