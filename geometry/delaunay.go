package geometry

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
)

// hullEps is the distance tolerance handed to the convex-hull engine.
// Spiral coordinates stay within a few hundred units, so an absolute
// tolerance works.
const hullEps = 1e-9

// Triangulation is a Delaunay triangulation of a planar point set.
type Triangulation struct {
	// Points are the input sites, in input order.
	Points []r2.Point

	// Triangles are vertex-index triples in counter-clockwise order.
	Triangles [][3]int

	// Incident triangle fans per site, in rotational order around the site.
	// Open fans (hull sites) start and end at a hull edge.
	fanIdx  []int
	fanOff  []int
	fanOpen []bool
}

// IncidentTriangles returns the triangles incident to site v, ordered
// rotationally around it. For hull sites the fan is open.
func (t *Triangulation) IncidentTriangles(v int) []int {
	if v < 0 || v+1 >= len(t.fanOff) {
		panic(fmt.Sprintf("IncidentTriangles: site %d out of range", v))
	}
	return t.fanIdx[t.fanOff[v]:t.fanOff[v+1]]
}

// OnHull reports whether site v lies on the convex hull (its fan is open).
func (t *Triangulation) OnHull(v int) bool { return t.fanOpen[v] }

// nextVertex returns the vertex after v in the triangle's CCW order.
func nextVertex(tri [3]int, v int) int {
	switch v {
	case tri[0]:
		return tri[1]
	case tri[1]:
		return tri[2]
	case tri[2]:
		return tri[0]
	}
	panic("nextVertex: vertex not in triangle")
}

// prevVertex returns the vertex before v in the triangle's CCW order.
func prevVertex(tri [3]int, v int) int {
	switch v {
	case tri[0]:
		return tri[2]
	case tri[1]:
		return tri[0]
	case tri[2]:
		return tri[1]
	}
	panic("prevVertex: vertex not in triangle")
}

// Triangulate computes the Delaunay triangulation of points.
//
// Degenerate inputs (fewer than 3 points, collinear or coincident points)
// return a *Error. Panics inside the hull engine are fenced and converted
// to errors so a bad input can never take the process down.
func Triangulate(points []r2.Point) (tri *Triangulation, err error) {
	const op = "triangulate"
	if len(points) < 3 {
		return nil, errorf(op, "need at least 3 points, got %d", len(points))
	}

	lifted := make([]r3.Vector, len(points))
	for i, p := range points {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}

	var hull quickhull.ConvexHull
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &Error{Op: op, Msg: "convex hull engine failed", Err: fmt.Errorf("%v", r)}
			}
		}()
		qh := new(quickhull.QuickHull)
		hull = qh.ConvexHull(lifted, true, true, hullEps)
	}()
	if err != nil {
		return nil, err
	}
	if len(hull.Indices)%3 != 0 {
		return nil, errorf(op, "hull engine returned %d indices, not a multiple of 3", len(hull.Indices))
	}

	// The lower hull of the lifted set is the Delaunay triangulation.
	// With CCW winding the face normals point outward, so lower faces are
	// those whose normal has a negative z component.
	tri = &Triangulation{Points: points}
	for i := 0; i+2 < len(hull.Indices); i += 3 {
		i0, i1, i2 := hull.Indices[i], hull.Indices[i+1], hull.Indices[i+2]
		a, b, c := lifted[i0], lifted[i1], lifted[i2]
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Z >= 0 {
			continue
		}
		t := [3]int{i0, i1, i2}
		orientCCW(&t, points)
		tri.Triangles = append(tri.Triangles, t)
	}
	if len(tri.Triangles) == 0 {
		return nil, errorf(op, "degenerate input: points are collinear or coincident")
	}

	if err := tri.buildFans(); err != nil {
		return nil, err
	}
	return tri, nil
}

// orientCCW ensures the projected triangle winds counter-clockwise in 2D.
func orientCCW(t *[3]int, points []r2.Point) {
	a, b, c := points[t[0]], points[t[1]], points[t[2]]
	if b.Sub(a).Cross(c.Sub(a)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// buildFans groups the triangles incident to each site and orders every
// group into a rotational chain. Around a site, the triangle after
// (v, a, b) is the one whose CCW-next vertex equals b; interior sites form
// a closed loop, hull sites an open chain starting at a hull edge.
func (t *Triangulation) buildFans() error {
	n := len(t.Points)
	t.fanOff = make([]int, n+1)
	t.fanOpen = make([]bool, n)
	for _, tr := range t.Triangles {
		for _, v := range tr {
			t.fanOff[v+1]++
		}
	}
	for i := 0; i < n; i++ {
		t.fanOff[i+1] += t.fanOff[i]
	}

	t.fanIdx = make([]int, len(t.Triangles)*3)
	next := make([]int, n)
	copy(next, t.fanOff[:n])
	for ti, tr := range t.Triangles {
		for _, v := range tr {
			t.fanIdx[next[v]] = ti
			next[v]++
		}
	}

	for v := 0; v < n; v++ {
		fan := t.fanIdx[t.fanOff[v]:t.fanOff[v+1]]
		if len(fan) == 0 {
			continue
		}
		open, err := orderFan(fan, v, t.Triangles)
		if err != nil {
			return err
		}
		t.fanOpen[v] = open
	}
	return nil
}

// orderFan reorders fan in place into a rotational chain around site v and
// reports whether the chain is open (v is a hull site).
func orderFan(fan []int, v int, tris [][3]int) (open bool, err error) {
	const op = "triangulate"
	if len(fan) == 1 {
		return true, nil
	}

	// Map each triangle's CCW-next vertex (after v) to the triangle, then
	// chain successors through the CCW-previous vertex.
	byNext := make(map[int]int, len(fan))
	isPrev := make(map[int]bool, len(fan))
	for _, ti := range fan {
		byNext[nextVertex(tris[ti], v)] = ti
		isPrev[prevVertex(tris[ti], v)] = true
	}
	if len(byNext) != len(fan) {
		return false, errorf(op, "inconsistent fan around site %d (coincident points?)", v)
	}

	// An open chain starts at the triangle whose next-vertex is not any
	// triangle's prev-vertex; a closed loop has no such triangle.
	start := fan[0]
	for _, ti := range fan {
		if !isPrev[nextVertex(tris[ti], v)] {
			start = ti
			open = true
			break
		}
	}

	ordered := make([]int, 0, len(fan))
	cur := start
	for range fan {
		ordered = append(ordered, cur)
		nxt, ok := byNext[prevVertex(tris[cur], v)]
		if !ok {
			break
		}
		cur = nxt
	}
	if len(ordered) != len(fan) {
		return false, errorf(op, "broken fan around site %d (coincident points?)", v)
	}
	copy(fan, ordered)
	return open, nil
}
