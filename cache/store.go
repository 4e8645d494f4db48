package cache

import "fmt"

// Store is a read-only pre-baked cache tier consulted on a session-cache
// miss. Implementations must be safe for concurrent reads; the store is
// never mutated after it is opened.
type Store interface {
	// Get returns the serialized entry for an exact cache key.
	// ok is false on a clean miss; err reports store-level failures.
	Get(key string) (data []byte, ok bool, err error)

	// Close releases the store's resources. Must be called deterministically
	// on session teardown, not left to finalizers.
	Close() error
}

// IOError reports an unreadable, corrupt, or missing disk tier. Callers
// degrade to memory-only caching with a logged warning; it is never fatal.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cache: disk store %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
