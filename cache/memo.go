package cache

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r2"
)

// Default configuration constants.
const (
	// memoShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	memoShardCount = 16

	// memoShardMask is used for fast shard selection.
	memoShardMask = memoShardCount - 1

	// DefaultMemoBytes is the default byte budget across all shards.
	DefaultMemoBytes = 64 << 20

	// DefaultMemoTTL is the default entry lifetime.
	DefaultMemoTTL = 30 * time.Minute
)

// HashPoints computes an FNV-1a hash over the raw coordinate bits of a
// point sequence. Two identical point arrays always hash alike, so the
// memo cache catches reuse even when semantic cache keys differ (e.g.
// truncation on/off producing the same filtered set).
func HashPoints(points []r2.Point) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	for _, p := range points {
		putUint64(buf[0:8], math.Float64bits(p.X))
		putUint64(buf[8:16], math.Float64bits(p.Y))
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}
	return h.Sum64()
}

func putUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

// Memo is a thread-safe, sharded memoization cache with a byte-size ceiling
// and age expiry. It sits underneath the geometry adapter, keyed by
// point-array hash rather than by semantic parameters.
//
// Eviction combines LRU-at-capacity with TTL expiry: an entry is dropped
// when its shard exceeds its byte budget (least recently used first) or
// when it outlives the TTL.
type Memo[V any] struct {
	shards   [memoShardCount]*memoShard[V]
	maxBytes int64 // per-shard budget
	ttl      time.Duration
	now      func() time.Time

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type memoShard[V any] struct {
	mu      sync.Mutex
	entries map[uint64]*memoEntry[V]
	lru     *lruList[uint64]
	bytes   int64
}

type memoEntry[V any] struct {
	value    V
	cost     int64
	storedAt time.Time
	node     *lruNode[uint64]
}

// NewMemo creates a memo cache with the given total byte budget and TTL.
// Non-positive arguments fall back to the defaults.
func NewMemo[V any](maxBytes int64, ttl time.Duration) *Memo[V] {
	if maxBytes <= 0 {
		maxBytes = DefaultMemoBytes
	}
	if ttl <= 0 {
		ttl = DefaultMemoTTL
	}
	m := &Memo[V]{
		maxBytes: maxBytes / memoShardCount,
		ttl:      ttl,
		now:      time.Now,
	}
	for i := range m.shards {
		m.shards[i] = &memoShard[V]{
			entries: make(map[uint64]*memoEntry[V]),
			lru:     newLRUList[uint64](),
		}
	}
	return m
}

func (m *Memo[V]) shard(key uint64) *memoShard[V] {
	return m.shards[key&memoShardMask]
}

// Get retrieves a memoized value. Expired entries count as misses and are
// removed on access.
func (m *Memo[V]) Get(key uint64) (V, bool) {
	s := m.shard(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		m.misses.Add(1)
		var zero V
		return zero, false
	}
	if m.now().Sub(e.storedAt) > m.ttl {
		s.remove(key, e)
		s.mu.Unlock()
		m.misses.Add(1)
		m.evictions.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(e.node)
	v := e.value
	s.mu.Unlock()
	m.hits.Add(1)
	return v, true
}

// Set stores a value with its byte cost. A value too large for the shard
// budget is not cached at all. The value is stored as-is (not copied);
// callers must not modify it after caching.
func (m *Memo[V]) Set(key uint64, value V, cost int64) {
	if cost > m.maxBytes {
		return
	}
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.bytes += cost - e.cost
		e.value = value
		e.cost = cost
		e.storedAt = m.now()
		s.lru.MoveToFront(e.node)
	} else {
		node := s.lru.PushFront(key)
		s.entries[key] = &memoEntry[V]{value: value, cost: cost, storedAt: m.now(), node: node}
		s.bytes += cost
	}

	for s.bytes > m.maxBytes {
		oldest := s.lru.Oldest()
		if oldest == nil {
			break
		}
		s.remove(oldest.key, s.entries[oldest.key])
		m.evictions.Add(1)
	}
}

// remove deletes an entry. Caller holds the shard lock.
func (s *memoShard[V]) remove(key uint64, e *memoEntry[V]) {
	s.lru.Remove(e.node)
	delete(s.entries, key)
	s.bytes -= e.cost
}

// Len returns the total number of entries across all shards.
func (m *Memo[V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Bytes returns the total accounted cost across all shards.
func (m *Memo[V]) Bytes() int64 {
	var total int64
	for _, s := range m.shards {
		s.mu.Lock()
		total += s.bytes
		s.mu.Unlock()
	}
	return total
}

// Stats returns current cache statistics.
func (m *Memo[V]) Stats() Stats {
	hits := m.hits.Load()
	misses := m.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       m.Len(),
		Bytes:     m.Bytes(),
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: m.evictions.Load(),
	}
}

// Stats describes the state of a cache tier.
type Stats struct {
	Len       int
	Bytes     int64
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
