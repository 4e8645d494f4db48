package floret

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
)

// Truncate drops outlier points whose distance from the origin exceeds
// factor times the median radius of the original set. Large angle ranges
// put a handful of points far from the cluster center; trimming them keeps
// the plot limits tight without manual point-count tuning.
//
// Point order is preserved. If filtering would leave fewer than minPoints
// entries, the factor is overridden and the minPoints points closest to the
// center are kept instead, so the output is always tessellation-eligible.
//
// factor must be positive; anything else is a caller bug reported as
// ErrInvalidArgument.
func Truncate(points []r2.Point, factor float64, minPoints int) ([]r2.Point, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: truncation factor %g must be positive", ErrInvalidArgument, factor)
	}
	if len(points) <= minPoints {
		out := make([]r2.Point, len(points))
		copy(out, points)
		return out, nil
	}

	radii := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Norm()
	}
	limit := factor * median(radii)

	out := make([]r2.Point, 0, len(points))
	for i, p := range points {
		if radii[i] <= limit {
			out = append(out, p)
		}
	}
	if len(out) >= minPoints {
		return out, nil
	}

	// Safety floor: keep the minPoints smallest radii, in original order.
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return radii[idx[a]] < radii[idx[b]] })
	keep := idx[:minPoints]
	sort.Ints(keep)

	out = out[:0]
	for _, i := range keep {
		out = append(out, points[i])
	}
	return out, nil
}

// median returns the median of vs without modifying it.
// The even-length case averages the two middle values.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
