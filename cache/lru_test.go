package cache

import "testing"

func TestLRUListOrder(t *testing.T) {
	l := newLRUList[string]()
	a := l.PushFront("a")
	l.PushFront("b")
	l.PushFront("c")

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	if got := l.Oldest(); got.key != "a" {
		t.Errorf("Oldest = %q, want %q", got.key, "a")
	}

	l.MoveToFront(a)
	if got := l.Oldest(); got.key != "b" {
		t.Errorf("after MoveToFront(a), Oldest = %q, want %q", got.key, "b")
	}

	key, ok := l.RemoveOldest()
	if !ok || key != "b" {
		t.Errorf("RemoveOldest = (%q, %v), want (%q, true)", key, ok, "b")
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d after removal, want 2", l.Len())
	}
}

func TestLRUListRemove(t *testing.T) {
	l := newLRUList[int]()
	l.PushFront(1)
	mid := l.PushFront(2)
	l.PushFront(3)

	l.Remove(mid)
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	// Remaining order: oldest is 1, front is 3.
	if got := l.Oldest(); got.key != 1 {
		t.Errorf("Oldest = %d, want 1", got.key)
	}
}

func TestLRUListClear(t *testing.T) {
	l := newLRUList[int]()
	l.PushFront(1)
	l.PushFront(2)
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", l.Len())
	}
	if l.Oldest() != nil {
		t.Error("Oldest non-nil after Clear")
	}
	if _, ok := l.RemoveOldest(); ok {
		t.Error("RemoveOldest succeeded on empty list")
	}
}
