package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSessionBytes is the default session-tier byte budget.
const DefaultSessionBytes = 128 << 20

// Session is the first cache tier: an exact-key mapping from canonical
// parameter keys to computed results, scoped to one user session. Entries
// are immutable once stored and owned exclusively by the session.
//
// The engine is the only writer; render and export paths read concurrently,
// which the RW lock permits. Eviction is LRU at the byte budget, with an
// optional age cutoff.
type Session[V any] struct {
	mu       sync.RWMutex
	entries  map[string]*sessionEntry[V]
	lru      *lruList[string]
	bytes    int64
	maxBytes int64
	maxAge   time.Duration // 0 disables age expiry
	now      func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

type sessionEntry[V any] struct {
	value    V
	cost     int64
	storedAt time.Time
	node     *lruNode[string]
}

// NewSession creates a session cache with the given byte budget and age
// cutoff. maxBytes <= 0 falls back to the default; maxAge <= 0 disables
// age expiry.
func NewSession[V any](maxBytes int64, maxAge time.Duration) *Session[V] {
	if maxBytes <= 0 {
		maxBytes = DefaultSessionBytes
	}
	return &Session[V]{
		entries:  make(map[string]*sessionEntry[V]),
		lru:      newLRUList[string](),
		maxBytes: maxBytes,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Get returns the entry for key if present and fresh.
func (s *Session[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	expired := ok && s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge
	s.mu.RUnlock()

	if !ok || expired {
		if expired {
			s.mu.Lock()
			if e, ok := s.entries[key]; ok {
				s.removeLocked(key, e)
			}
			s.mu.Unlock()
		}
		s.misses.Add(1)
		var zero V
		return zero, false
	}

	s.mu.Lock()
	e, ok = s.entries[key]
	if !ok {
		s.mu.Unlock()
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(e.node)
	v := e.value
	s.mu.Unlock()
	s.hits.Add(1)
	return v, true
}

// Put stores an entry. Oversized values are silently not cached.
func (s *Session[V]) Put(key string, value V, cost int64) {
	if cost > s.maxBytes {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.bytes += cost - e.cost
		e.value = value
		e.cost = cost
		e.storedAt = s.now()
		s.lru.MoveToFront(e.node)
	} else {
		node := s.lru.PushFront(key)
		s.entries[key] = &sessionEntry[V]{value: value, cost: cost, storedAt: s.now(), node: node}
		s.bytes += cost
	}

	for s.bytes > s.maxBytes {
		oldest := s.lru.Oldest()
		if oldest == nil {
			break
		}
		s.removeLocked(oldest.key, s.entries[oldest.key])
	}
}

func (s *Session[V]) removeLocked(key string, e *sessionEntry[V]) {
	s.lru.Remove(e.node)
	delete(s.entries, key)
	s.bytes -= e.cost
}

// Len returns the number of cached entries.
func (s *Session[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns current tier statistics.
func (s *Session[V]) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	s.mu.RLock()
	n := len(s.entries)
	bytes := s.bytes
	s.mu.RUnlock()
	return Stats{Len: n, Bytes: bytes, Hits: hits, Misses: misses, HitRate: hitRate}
}
