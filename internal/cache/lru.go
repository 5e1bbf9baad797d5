// Package cache keeps recently served visualization objects in memory.
package cache

import (
	"container/list"
	"sync"
	"time"

	"ynabviz/internal/blob"
)

// LRU is an object cache bounded by total body size, with a TTL per entry.
type LRU struct {
	mu       sync.Mutex
	maxBytes int
	ttl      time.Duration
	now      func() time.Time
	size     int
	items    map[string]*list.Element
	lru      *list.List
	hits     int64
	misses   int64
}

type entry struct {
	obj       blob.Object
	expiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries int
	Bytes   int
	Hits    int64
	Misses  int64
}

func NewLRU(maxBytes int, ttl time.Duration) *LRU {
	return &LRU{
		maxBytes: maxBytes,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func (c *LRU) Get(key string) (blob.Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return blob.Object{}, false
	}
	e := elem.Value.(*entry)
	if c.now().After(e.expiresAt) {
		c.remove(elem)
		c.misses++
		return blob.Object{}, false
	}
	c.lru.MoveToFront(elem)
	c.hits++
	return e.obj, true
}

// Set stores obj. Objects larger than the whole budget are not cached.
func (c *LRU) Set(obj blob.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(obj.Body) > c.maxBytes {
		return
	}
	if elem, ok := c.items[obj.Key]; ok {
		c.remove(elem)
	}
	elem := c.lru.PushFront(&entry{obj: obj, expiresAt: c.now().Add(c.ttl)})
	c.items[obj.Key] = elem
	c.size += len(obj.Body)

	for c.size > c.maxBytes {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest)
	}
}

func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *LRU) remove(elem *list.Element) {
	e := elem.Value.(*entry)
	delete(c.items, e.obj.Key)
	c.size -= len(e.obj.Body)
	c.lru.Remove(elem)
}

func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.items), Bytes: c.size, Hits: c.hits, Misses: c.misses}
}
