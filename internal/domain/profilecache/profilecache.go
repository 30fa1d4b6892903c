// Package profilecache memoizes derived charts keyed by birth input.
//
// Derivation is deterministic, so a bounded cache is a transparent
// optimization: a hit and a fresh derivation are indistinguishable.
package profilecache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Derived is a cached derivation result.
type Derived struct {
	Moment  model.NormalizedMoment
	Pillars model.FourPillars
	Profile model.ElementalProfile
}

// Cache stores derived charts with bounded memory.
type Cache interface {
	// Lookup returns the cached derivation for a birth input, if any.
	Lookup(ctx context.Context, in model.BirthInput) (Derived, bool)

	// Store records a derivation, evicting the oldest surplus entry
	// when the cache is full.
	Store(ctx context.Context, in model.BirthInput, d Derived)

	Size() int64
}

// Key builds the canonical cache key for a birth input.
func Key(in model.BirthInput) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d %.4f %s %s",
		in.Year, in.Month, in.Day, in.Hour, in.Minute, in.Longitude, in.Gender, in.Confidence)
}

// node is one entry in the eviction list, most recent at the head.
type node struct {
	key  string
	val  Derived
	next *node
}

func (n *node) reset() {
	n.key = ""
	n.val = Derived{}
	n.next = nil
}

// inMemoryCache implements Cache with a map plus a linked eviction list.
// maxSize <= 0 disables eviction entirely.
type inMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]*node
	head     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// Option applies a configuration option to the cache.
type Option func(*inMemoryCache)

// WithMaxSize bounds the cache. maxSize <= 0 means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		c.maxSize = maxSize
	}
}

// New creates an in-memory cache with configuration options.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 10000, // default max size
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]*node)
	if c.maxSize > 0 {
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}
	return c
}

func (c *inMemoryCache) Lookup(ctx context.Context, in model.BirthInput) (Derived, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[Key(in)]
	if !ok || n == nil {
		return Derived{}, false
	}
	return n.val, true
}

func (c *inMemoryCache) Store(ctx context.Context, in model.BirthInput, d Derived) {
	key := Key(in)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		if existing != nil {
			existing.val = d
		}
		return
	}

	if c.maxSize > 0 {
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
		n := c.nodePool.Get().(*node)
		n.key = key
		n.val = d
		n.next = c.head
		c.head = n
		c.entries[key] = n
	} else {
		c.entries[key] = &node{key: key, val: d}
	}
	c.size.Add(1)
}

// evictOldest drops the tail of the list. Must hold c.mu.
func (c *inMemoryCache) evictOldest() {
	if c.head == nil {
		return
	}
	if c.head.next == nil {
		delete(c.entries, c.head.key)
		c.head.reset()
		c.nodePool.Put(c.head)
		c.head = nil
		c.size.Add(-1)
		return
	}
	prev := c.head
	cur := c.head.next
	for cur.next != nil {
		prev = cur
		cur = cur.next
	}
	prev.next = nil
	delete(c.entries, cur.key)
	cur.reset()
	c.nodePool.Put(cur)
	c.size.Add(-1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
