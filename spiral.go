package floret

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r2"
)

// Generator produces the Fermat-spiral point sequence for an angle range.
//
// The default implementation is a plain loop over precomputed angle steps.
// An alternative implementation (e.g. SIMD-assisted) can be installed once
// at startup via RegisterGenerator; per-call dispatch stays a single
// interface call.
type Generator interface {
	// Name returns the generator name (e.g. "loop").
	Name() string

	// Points fills out with n spiral points sampled uniformly over
	// [angleStart, angleEnd], both endpoints included. Inputs are already
	// validated: n >= 2, angleEnd > angleStart, angleStart >= 0.
	Points(out []r2.Point, angleStart, angleEnd float64, n int)
}

// loopGenerator is the default generator.
type loopGenerator struct{}

func (loopGenerator) Name() string { return "loop" }

func (loopGenerator) Points(out []r2.Point, angleStart, angleEnd float64, n int) {
	step := (angleEnd - angleStart) / float64(n-1)
	for i := range out {
		theta := angleStart + float64(i)*step
		s := math.Sqrt(theta)
		sin, cos := math.Sincos(theta)
		out[i] = r2.Point{X: s * cos, Y: s * sin}
	}
	// Pin the endpoint exactly; accumulated step error must not move it.
	theta := angleEnd
	s := math.Sqrt(theta)
	sin, cos := math.Sincos(theta)
	out[n-1] = r2.Point{X: s * cos, Y: s * sin}
}

var (
	genMu     sync.RWMutex
	activeGen Generator = loopGenerator{}
)

// RegisterGenerator installs an alternative spiral generator. Intended to be
// called once at startup; subsequent calls replace the previous generator.
// Passing nil restores the default.
func RegisterGenerator(g Generator) {
	if g == nil {
		g = loopGenerator{}
	}
	genMu.Lock()
	activeGen = g
	genMu.Unlock()
}

// ActiveGenerator returns the generator currently in use.
func ActiveGenerator() Generator {
	genMu.RLock()
	g := activeGen
	genMu.RUnlock()
	return g
}

// Generate returns n Fermat-spiral points for angles sampled uniformly over
// the closed interval [angleStart, angleEnd]:
//
//	x = sqrt(theta) * cos(theta)
//	y = sqrt(theta) * sin(theta)
//
// Point order follows angle order, so adjacent points are adjacent along the
// spiral arc. Generate is deterministic and has no side effects.
//
// Preconditions are programmer contracts, reported as ErrInvalidArgument:
// n >= 2, angleEnd > angleStart, and angleStart >= 0 (negative angles would
// make sqrt(theta) complex; they are rejected rather than propagated as NaN).
func Generate(angleStart, angleEnd float64, n int) ([]r2.Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 2", ErrInvalidArgument, n)
	}
	if !(angleEnd > angleStart) {
		return nil, fmt.Errorf("%w: angle range [%g, %g] is empty", ErrInvalidArgument, angleStart, angleEnd)
	}
	if angleStart < 0 {
		return nil, fmt.Errorf("%w: angle start %g is negative", ErrInvalidArgument, angleStart)
	}

	out := make([]r2.Point, n)
	ActiveGenerator().Points(out, angleStart, angleEnd, n)
	return out, nil
}
