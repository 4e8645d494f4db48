// Package cache provides the tiers behind floret's computation pipeline:
// a session-scoped result cache, a memoized compute cache keyed by
// point-array content, and read-only pre-baked disk stores.
package cache

// lruNode is one entry in an lruList.
type lruNode[K any] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is an intrusive doubly-linked list ordered most-recently-used
// first. Not safe for concurrent use; callers hold the shard lock.
type lruList[K any] struct {
	root lruNode[K] // sentinel
	len  int
}

func newLRUList[K any]() *lruList[K] {
	l := &lruList[K]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

func (l *lruList[K]) Len() int { return l.len }

// PushFront inserts a new node holding key at the front.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

// MoveToFront marks n as most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertAfter(n, &l.root)
}

// Remove unlinks n from the list.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	l.unlink(n)
	l.len--
}

// RemoveOldest unlinks and returns the least recently used key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.unlink(n)
	l.len--
	return n.key, true
}

// Oldest returns the least recently used node without removing it.
func (l *lruList[K]) Oldest() *lruNode[K] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// Clear empties the list.
func (l *lruList[K]) Clear() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.len = 0
}

func (l *lruList[K]) insertAfter(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}
