package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"
)

// Recorder receives cache events, e.g. for Prometheus counters.
type Recorder func(name, operation, result string)

// ShardedCache is an LRU cache with per-entry TTL, split into shards to reduce lock
// contention. It is safe for concurrent use.
type ShardedCache[V any] struct {
	name       string
	shards     []*ttlCache[V]
	mask       uint32
	generation atomic.Uint64
}

// Options configures a ShardedCache.
type Options struct {
	Name     string
	Capacity int
	TTL      time.Duration
	Shards   int
	Recorder Recorder
}

// NewShardedCache creates a cache. The shard count is rounded up to a power of two and the
// capacity is split evenly across shards.
func NewShardedCache[V any](opts Options) *ShardedCache[V] {
	n := 1
	for n < opts.Shards {
		n *= 2
	}
	perShard := opts.Capacity / n
	if perShard < 1 {
		perShard = 1
	}
	record := opts.Recorder
	if record == nil {
		record = func(string, string, string) {}
	}

	sc := &ShardedCache[V]{name: opts.Name, shards: make([]*ttlCache[V], n), mask: uint32(n - 1)}
	for i := range sc.shards {
		sc.shards[i] = newTTLCache[V](opts.Name, perShard, opts.TTL, record)
	}
	return sc
}

func (sc *ShardedCache[V]) shard(key string) *ttlCache[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.mask]
}

// Get returns the live value for key.
func (sc *ShardedCache[V]) Get(key string) (V, bool) { return sc.shard(key).Get(key) }

// Set stores value under key, evicting the shard's least recently used entry when full.
func (sc *ShardedCache[V]) Set(key string, value V) { sc.shard(key).Set(key, value) }

// Generation returns the number of Clear calls so far.
func (sc *ShardedCache[V]) Generation() uint64 { return sc.generation.Load() }

// SetIfGeneration stores value unless Clear ran since gen was read. The check and the insert
// happen under the shard lock and Clear bumps the generation before it empties the shards,
// so a stale value is either skipped or removed by that Clear.
func (sc *ShardedCache[V]) SetIfGeneration(key string, value V, gen uint64) bool {
	return sc.shard(key).setIf(key, value, func() bool { return sc.generation.Load() == gen })
}

// Invalidate removes key.
func (sc *ShardedCache[V]) Invalidate(key string) { sc.shard(key).Invalidate(key) }

// Clear removes every entry.
func (sc *ShardedCache[V]) Clear() {
	sc.generation.Add(1)
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop ends the background cleanup of every shard.
func (sc *ShardedCache[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics sums the metrics of all shards.
func (sc *ShardedCache[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

type entry[V any] struct {
	key        string
	value      V
	expiresAt  time.Time
	prev, next *entry[V]
}

// ttlCache is one shard: a map plus a doubly linked list in recency order.
type ttlCache[V any] struct {
	name     string
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]
	record   Recorder
	stopOnce sync.Once
	stopCh   chan struct{}
	now      func() time.Time

	hits, misses, evictions atomic.Int64
}

func newTTLCache[V any](name string, capacity int, ttl time.Duration, record Recorder) *ttlCache[V] {
	c := &ttlCache[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		record:   record,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
	if ttl > 0 {
		go c.cleanupLoop()
	}
	return c
}

func (c *ttlCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		c.record(c.name, "get", "miss")
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.unlink(e)
		delete(c.items, key)
		c.mu.Unlock()
		c.misses.Add(1)
		c.record(c.name, "get", "expired")
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	c.hits.Add(1)
	c.record(c.name, "get", "hit")
	return value, true
}

func (c *ttlCache[V]) Set(key string, value V) {
	c.setIf(key, value, nil)
}

// setIf stores value when valid is nil or reports true while the shard is locked.
func (c *ttlCache[V]) setIf(key string, value V, valid func() bool) bool {
	c.mu.Lock()
	if valid != nil && !valid() {
		c.mu.Unlock()
		c.record(c.name, "set", "stale")
		return false
	}
	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		c.mu.Unlock()
		c.record(c.name, "set", "update")
		return true
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.pushFront(e)
	evicted := false
	if len(c.items) > c.capacity && c.tail != nil {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.items, oldest.key)
		evicted = true
	}
	c.mu.Unlock()

	if evicted {
		c.evictions.Add(1)
		c.record(c.name, "evict", "capacity")
	}
	c.record(c.name, "set", "insert")
	return true
}

func (c *ttlCache[V]) Invalidate(key string) {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		c.unlink(e)
		delete(c.items, key)
	}
	c.mu.Unlock()
	if ok {
		c.record(c.name, "invalidate", "success")
	}
}

func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]*entry[V], c.capacity)
	c.head, c.tail = nil, nil
	c.mu.Unlock()
	c.record(c.name, "clear", "success")
}

func (c *ttlCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache[V]) Metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *ttlCache[V]) cleanupLoop() {
	interval := c.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache[V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	for key, e := range c.items {
		if t.After(e.expiresAt) {
			c.unlink(e)
			delete(c.items, key)
		}
	}
}

func (c *ttlCache[V]) moveToFront(e *entry[V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *ttlCache[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ttlCache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

var _ CacheWithMetrics[int] = (*ShardedCache[int])(nil)
