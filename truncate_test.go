package floret

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
)

func TestTruncateDropsOutliers(t *testing.T) {
	// Nine points near the origin, one far outlier.
	pts := make([]r2.Point, 0, 10)
	for i := 0; i < 9; i++ {
		pts = append(pts, r2.Point{X: float64(i) * 0.1, Y: 0})
	}
	pts = append(pts, r2.Point{X: 100, Y: 100})

	out, err := Truncate(pts, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 9 {
		t.Fatalf("got %d points, want 9 (outlier dropped)", len(out))
	}
	for _, p := range out {
		if p.Norm() > 1 {
			t.Errorf("outlier %+v survived truncation", p)
		}
	}
}

func TestTruncateThresholdProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const minPoints = 5
	for trial := 0; trial < 50; trial++ {
		n := 10 + rng.Intn(200)
		pts := make([]r2.Point, n)
		radii := make([]float64, n)
		for i := range pts {
			pts[i] = r2.Point{X: rng.NormFloat64() * 10, Y: rng.NormFloat64() * 10}
			radii[i] = pts[i].Norm()
		}
		factor := 0.2 + rng.Float64()*3
		limit := factor * median(radii)

		out, err := Truncate(pts, factor, minPoints)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) < minPoints {
			t.Fatalf("trial %d: result has %d points, below floor %d", trial, len(out), minPoints)
		}

		// When the floor did not trigger, every survivor is within the
		// threshold computed over the original set.
		floorTriggered := false
		within := 0
		for _, r := range radii {
			if r <= limit {
				within++
			}
		}
		if within < minPoints {
			floorTriggered = true
		}
		if !floorTriggered {
			for _, p := range out {
				if p.Norm() > limit {
					t.Fatalf("trial %d: survivor radius %g exceeds limit %g", trial, p.Norm(), limit)
				}
			}
		}
	}
}

func TestTruncateSafetyFloor(t *testing.T) {
	// An absurdly small factor drops everything; the floor keeps the
	// minPoints closest points instead.
	pts := make([]r2.Point, 20)
	for i := range pts {
		pts[i] = r2.Point{X: float64(i + 1), Y: 0}
	}
	out, err := Truncate(pts, 1e-9, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("got %d points, want floor of 5", len(out))
	}
	for i, p := range out {
		want := r2.Point{X: float64(i + 1), Y: 0}
		if p != want {
			t.Errorf("point %d = %+v, want %+v (closest kept in order)", i, p, want)
		}
	}
}

func TestTruncatePreservesOrder(t *testing.T) {
	pts, err := Generate(0, 60, 100)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Truncate(pts, 1.2, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Radii grow along the spiral, so order preservation means sorted radii.
	for i := 1; i < len(out); i++ {
		if out[i].Norm() < out[i-1].Norm() {
			t.Fatalf("order not preserved at %d", i)
		}
	}
}

func TestTruncateInvalidFactor(t *testing.T) {
	pts := []r2.Point{{X: 1}, {X: 2}, {X: 3}}
	for _, factor := range []float64{0, -1, -0.5} {
		if _, err := Truncate(pts, factor, 3); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Truncate(factor=%g) error = %v, want ErrInvalidArgument", factor, err)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.in); got != tt.want {
				t.Errorf("median(%v) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}
