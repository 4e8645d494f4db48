// Package geometry builds Delaunay triangulations and Voronoi tessellations
// of planar point sets.
//
// Triangulation is delegated to a convex-hull engine
// (github.com/markus-wa/quickhull-go): points are lifted onto the paraboloid
// z = x^2 + y^2 and the downward-facing hull faces are exactly the Delaunay
// triangles. The Voronoi diagram is the dual: cell vertices are triangle
// circumcenters, and hull sites get open cells whose boundary rays end in
// points with infinite coordinates. A cell is bounded if and only if every
// vertex coordinate is finite.
package geometry

import "fmt"

// Error reports a failed triangulation or tessellation, typically caused by
// degenerate input: fewer than three points, all points collinear, or
// coincident points. It is an expected runtime condition, not a panic.
type Error struct {
	Op  string // operation that failed, e.g. "triangulate"
	Msg string
	Err error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geometry: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("geometry: %s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(op, format string, args ...any) *Error {
	return &Error{Op: op, Msg: fmt.Sprintf(format, args...)}
}
