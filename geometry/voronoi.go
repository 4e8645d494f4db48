package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Edge is one Voronoi cell boundary segment. For the two rays of an open
// cell the far endpoint has infinite coordinates.
type Edge struct {
	P, Q r2.Point
}

// Cell is the Voronoi cell of one site: an ordered list of boundary edges.
// Consecutive edges share an endpoint; closed cells also wrap around.
type Cell struct {
	Site  r2.Point
	Edges []Edge

	// Bounded is true when every edge endpoint is finite.
	Bounded bool
}

// Tessellation owns a triangulation, its dual Voronoi cells, and the
// precomputed bounded-cell count. BoundedCount sizes color palettes, so the
// renderer and every exporter must use this one value.
type Tessellation struct {
	Tri          *Triangulation
	Cells        []Cell
	BoundedCount int
}

// SizeBytes estimates the in-memory footprint for cache accounting.
func (t *Tessellation) SizeBytes() int64 {
	size := int64(96)
	if t.Tri != nil {
		size += int64(len(t.Tri.Points))*16 + int64(len(t.Tri.Triangles))*24
	}
	for i := range t.Cells {
		size += 40 + int64(len(t.Cells[i].Edges))*32
	}
	return size
}

// Tessellate triangulates points and derives the Voronoi diagram.
// Degenerate inputs surface as *Error.
func Tessellate(points []r2.Point) (*Tessellation, error) {
	tri, err := Triangulate(points)
	if err != nil {
		return nil, err
	}
	return buildVoronoi(tri), nil
}

// buildVoronoi constructs the dual of a triangulation. Each site's cell
// vertices are the circumcenters of its incident triangles, visited in fan
// order. Hull sites additionally get two boundary rays, perpendicular to
// the two hull edges at the site and pointing away from the hull.
func buildVoronoi(tri *Triangulation) *Tessellation {
	centers := make([]r2.Point, len(tri.Triangles))
	for i, t := range tri.Triangles {
		centers[i] = circumcenter(tri.Points[t[0]], tri.Points[t[1]], tri.Points[t[2]])
	}

	tess := &Tessellation{
		Tri:   tri,
		Cells: make([]Cell, len(tri.Points)),
	}
	for v := range tri.Points {
		cell := &tess.Cells[v]
		cell.Site = tri.Points[v]

		fan := tri.IncidentTriangles(v)
		if len(fan) == 0 {
			// Site participates in no triangle (coincident input); leave the
			// cell empty and unbounded.
			continue
		}

		if tri.OnHull(v) {
			first, last := fan[0], fan[len(fan)-1]
			inDir := hullRayDir(tri, first, v, true)
			cell.Edges = append(cell.Edges, Edge{P: infinitePoint(inDir), Q: centers[first]})
			for i := 0; i+1 < len(fan); i++ {
				cell.Edges = append(cell.Edges, Edge{P: centers[fan[i]], Q: centers[fan[i+1]]})
			}
			outDir := hullRayDir(tri, last, v, false)
			cell.Edges = append(cell.Edges, Edge{P: centers[last], Q: infinitePoint(outDir)})
		} else {
			for i := range fan {
				next := fan[(i+1)%len(fan)]
				cell.Edges = append(cell.Edges, Edge{P: centers[fan[i]], Q: centers[next]})
			}
		}

		cell.Bounded = allFinite(cell.Edges)
		if cell.Bounded {
			tess.BoundedCount++
		}
	}
	return tess
}

// hullRayDir returns the direction of the unbounded Voronoi edge dual to
// one of the two hull edges at site v: perpendicular to that hull edge,
// pointing away from the triangle. first selects which hull edge of the
// open fan's boundary triangle ti to use.
func hullRayDir(tri *Triangulation, ti, v int, first bool) r2.Point {
	t := tri.Triangles[ti]
	var other int
	if first {
		other = nextVertex(t, v)
	} else {
		other = prevVertex(t, v)
	}
	site := tri.Points[v]
	edge := tri.Points[other].Sub(site)
	dir := edge.Ortho()

	// Orient away from the triangle interior: the ray leaves the hull, so it
	// points from the triangle's third vertex toward the hull edge midpoint.
	third := t[0] + t[1] + t[2] - v - other
	mid := site.Add(tri.Points[other]).Mul(0.5)
	if dir.Dot(mid.Sub(tri.Points[third])) < 0 {
		dir = dir.Mul(-1)
	}
	return dir.Normalize()
}

// infinitePoint maps a ray direction to a coordinate pair at infinity,
// preserving the direction's signs so downstream code can still tell which
// quadrant the ray leaves through. Components of (near-)zero direction stay
// zero; one infinite coordinate is enough to mark the endpoint non-finite.
func infinitePoint(dir r2.Point) r2.Point {
	const tiny = 1e-12
	var p r2.Point
	switch {
	case dir.X > tiny:
		p.X = math.Inf(1)
	case dir.X < -tiny:
		p.X = math.Inf(-1)
	}
	switch {
	case dir.Y > tiny:
		p.Y = math.Inf(1)
	case dir.Y < -tiny:
		p.Y = math.Inf(-1)
	}
	if p.X == 0 && p.Y == 0 {
		p.X = math.Inf(1)
	}
	return p
}

// circumcenter returns the center of the circle through a, b and c.
// A degenerate (collinear) triangle yields an infinite center, which marks
// the adjacent cells unbounded instead of producing garbage coordinates.
func circumcenter(a, b, c r2.Point) r2.Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return r2.Point{X: math.Inf(1), Y: math.Inf(1)}
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return r2.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
}

func allFinite(edges []Edge) bool {
	for _, e := range edges {
		for _, v := range [4]float64{e.P.X, e.P.Y, e.Q.X, e.Q.Y} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return len(edges) > 0
}
