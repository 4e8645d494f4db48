package floret

import (
	"errors"

	"github.com/floretlab/floret/cache"
	"github.com/floretlab/floret/geometry"
)

// ErrInvalidArgument reports a programmer-level contract violation, such as
// a non-positive truncation factor. Unlike validation failures it indicates
// a caller bug, so callers should not try to recover from it.
var ErrInvalidArgument = errors.New("floret: invalid argument")

// ValidationError reports a parameter set outside the configured bounds.
// It is an expected runtime condition: refuse to compute and show Message
// to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "floret: invalid parameters: " + e.Message
}

// GeometryError reports a failed triangulation or Voronoi construction,
// typically caused by degenerate input (collinear or duplicate points).
// Callers should surface the message and keep the previous successful
// result on screen.
type GeometryError = geometry.Error

// CacheIOError reports an unreadable or corrupt disk cache tier. The engine
// recovers by degrading to memory-only caching; it is never fatal.
type CacheIOError = cache.IOError
