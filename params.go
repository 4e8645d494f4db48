package floret

import (
	"strconv"
	"strings"

	"github.com/floretlab/floret/geometry"
	"github.com/golang/geo/r2"
)

// Params is one computation request. The UI layer owns and mutates parameter
// state; the engine treats a Params value as an immutable input.
type Params struct {
	AngleStart  float64
	AngleEnd    float64
	SampleCount int

	// Truncate enables the median-radius outlier filter.
	Truncate bool
	// TruncateFactor is the filter threshold multiplier; points with radius
	// above factor*median are dropped. Ignored when Truncate is false.
	TruncateFactor float64
}

// CacheKey returns the canonical encoding of the semantic parameter tuple.
//
// Floats are formatted with strconv's shortest round-trip representation,
// which is injective on float64, so two distinct tuples can never share a
// key. When truncation is disabled the factor is normalized to zero so that
// otherwise-identical requests hit the same entry.
func (p Params) CacheKey() string {
	factor := p.TruncateFactor
	trunc := byte('0')
	if p.Truncate {
		trunc = '1'
	} else {
		factor = 0
	}

	var b strings.Builder
	b.Grow(64)
	b.WriteString("a0=")
	b.WriteString(strconv.FormatFloat(p.AngleStart, 'g', -1, 64))
	b.WriteString("|a1=")
	b.WriteString(strconv.FormatFloat(p.AngleEnd, 'g', -1, 64))
	b.WriteString("|n=")
	b.WriteString(strconv.Itoa(p.SampleCount))
	b.WriteString("|t=")
	b.WriteByte(trunc)
	b.WriteString("|f=")
	b.WriteString(strconv.FormatFloat(factor, 'g', -1, 64))
	return b.String()
}

// Result is the outcome of one computation: the (possibly truncated) point
// sequence, its tessellation, and timing. Results are immutable once stored
// in a cache tier; callers must not modify them.
type Result struct {
	Params       Params
	Points       []r2.Point
	Tess         *geometry.Tessellation
	BoundedCount int

	// ElapsedMS is the wall-clock cost of the live computation that produced
	// this result. Zero for entries served from the disk tier.
	ElapsedMS float64
}

// sizeBytes estimates the in-memory footprint of a result for cache
// accounting. It only needs to be proportional, not exact.
func (r *Result) sizeBytes() int64 {
	size := int64(128)
	size += int64(len(r.Points)) * 16
	if r.Tess != nil {
		size += r.Tess.SizeBytes()
	}
	return size
}
