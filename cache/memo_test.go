package cache

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
)

func TestHashPoints(t *testing.T) {
	a := []r2.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	b := []r2.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	if HashPoints(a) != HashPoints(b) {
		t.Error("identical point arrays hash differently")
	}

	c := []r2.Point{{X: 1, Y: 2}, {X: 3, Y: 4.0000001}}
	if HashPoints(a) == HashPoints(c) {
		t.Error("different point arrays collide")
	}

	// Order matters: the hash is over the sequence, not the set.
	d := []r2.Point{{X: 3, Y: 4}, {X: 1, Y: 2}}
	if HashPoints(a) == HashPoints(d) {
		t.Error("reordered points collide")
	}

	if HashPoints(nil) != HashPoints([]r2.Point{}) {
		t.Error("empty and nil slices hash differently")
	}
}

func TestMemoGetSet(t *testing.T) {
	m := NewMemo[string](1<<20, time.Minute)

	if _, ok := m.Get(42); ok {
		t.Error("hit on empty cache")
	}
	m.Set(42, "value", 100)
	got, ok := m.Get(42)
	if !ok || got != "value" {
		t.Fatalf("Get(42) = (%q, %v), want (%q, true)", got, ok, "value")
	}

	// Overwrite replaces value and re-accounts cost.
	m.Set(42, "updated", 200)
	if got, _ := m.Get(42); got != "updated" {
		t.Errorf("after overwrite Get = %q", got)
	}
	if m.Bytes() != 200 {
		t.Errorf("Bytes = %d, want 200 after overwrite", m.Bytes())
	}
}

func TestMemoTTL(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemo[int](1<<20, time.Minute)
	m.now = func() time.Time { return clock }

	m.Set(1, 10, 8)
	if _, ok := m.Get(1); !ok {
		t.Fatal("fresh entry missed")
	}

	clock = clock.Add(61 * time.Second)
	if _, ok := m.Get(1); ok {
		t.Error("expired entry served")
	}
	if m.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", m.Len())
	}
}

func TestMemoByteEviction(t *testing.T) {
	// Per-shard budget is maxBytes/16. Keys 0..15 map to distinct shards, so
	// same-shard pressure needs keys 16 apart.
	m := NewMemo[int](16*100, time.Minute)

	m.Set(0, 1, 60)
	m.Set(16, 2, 60) // same shard as key 0: 120 > 100, evicts LRU (key 0)

	if _, ok := m.Get(0); ok {
		t.Error("evicted entry still present")
	}
	if v, ok := m.Get(16); !ok || v != 2 {
		t.Errorf("survivor Get(16) = (%d, %v)", v, ok)
	}
	if s := m.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestMemoLRUOrder(t *testing.T) {
	m := NewMemo[int](16*100, time.Minute)
	m.Set(0, 1, 40)
	m.Set(16, 2, 40)
	m.Get(0) // refresh key 0: key 16 becomes LRU
	m.Set(32, 3, 40)

	if _, ok := m.Get(16); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := m.Get(0); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestMemoOversizeNotCached(t *testing.T) {
	m := NewMemo[int](16*100, time.Minute)
	m.Set(7, 1, 1000) // over the per-shard budget
	if _, ok := m.Get(7); ok {
		t.Error("oversize value was cached")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestMemoStats(t *testing.T) {
	m := NewMemo[int](1<<20, time.Minute)
	m.Set(1, 1, 10)
	m.Get(1)
	m.Get(2)

	s := m.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}
	if s.HitRate != 0.5 {
		t.Errorf("HitRate = %g, want 0.5", s.HitRate)
	}
	if s.Len != 1 || s.Bytes != 10 {
		t.Errorf("Len/Bytes = %d/%d, want 1/10", s.Len, s.Bytes)
	}
}

func TestMemoConcurrent(t *testing.T) {
	m := NewMemo[int](1<<20, time.Minute)
	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				k := uint64(w*500 + i)
				m.Set(k, i, 16)
				m.Get(k)
			}
		}(w)
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	if m.Len() == 0 {
		t.Error("cache empty after concurrent load")
	}
}
