package floret

import (
	"math"

	"github.com/floretlab/floret/geometry"
)

// Limit is a symmetric plot range [Min, Max] with Min == -Max.
type Limit struct {
	Min, Max float64
}

// DefaultLimit is the range used when a tessellation has no finite vertices
// to derive bounds from. Overridable via config (limits.default).
const DefaultLimit = 10

// Limits derives symmetric view bounds from a tessellation: it scans both
// endpoints of every cell edge, takes the maximum absolute finite
// coordinate M, and returns [-ceil(M*padding), ceil(M*padding)]. The
// ceiling over-pads slightly so cell borders are never clipped at the view
// edge.
//
// Endpoints of unbounded-cell rays carry infinite coordinates and are
// skipped. If no finite coordinate exists at all (empty tessellation), the
// fallback range [-fallback, fallback] is returned instead of NaN/Inf
// leaking into the renderer.
func Limits(t *geometry.Tessellation, padding, fallback float64) Limit {
	maxAbs := 0.0
	found := false
	if t != nil {
		for ci := range t.Cells {
			for _, e := range t.Cells[ci].Edges {
				for _, v := range [4]float64{e.P.X, e.P.Y, e.Q.X, e.Q.Y} {
					if math.IsInf(v, 0) || math.IsNaN(v) {
						continue
					}
					found = true
					if a := math.Abs(v); a > maxAbs {
						maxAbs = a
					}
				}
			}
		}
	}
	if !found {
		return Limit{Min: -fallback, Max: fallback}
	}
	limit := math.Ceil(maxAbs * padding)
	return Limit{Min: -limit, Max: limit}
}
