package floret

import (
	"github.com/floretlab/floret/config"
	"github.com/floretlab/floret/internal/hostinfo"
)

// Profile is one member of the closed set of operating profiles. It bounds
// input ranges and cache sizes for the session; the UI layer reads
// DebounceMS for its input debouncing. Selected once per process start and
// read-only thereafter.
type Profile struct {
	Name        string
	MaxPoints   int
	DebounceMS  int
	CacheSizeMB int
}

// SelectProfile maps host capabilities to a profile using the configured
// thresholds: high, then medium, then low as the unconditional floor.
// Deterministic given the host facts.
func SelectProfile(f hostinfo.Facts, p config.Profiles) Profile {
	if f.Cores >= p.High.MinCores && f.MemoryMB >= p.High.MinMemoryMB {
		return profileFromSpec("high", p.High)
	}
	if f.Cores >= p.Medium.MinCores && f.MemoryMB >= p.Medium.MinMemoryMB {
		return profileFromSpec("medium", p.Medium)
	}
	return profileFromSpec("low", p.Low)
}

func profileFromSpec(name string, s config.ProfileSpec) Profile {
	return Profile{
		Name:        name,
		MaxPoints:   s.MaxPoints,
		DebounceMS:  s.DebounceMS,
		CacheSizeMB: s.CacheSizeMB,
	}
}

// EstimateTimeMS predicts the wall-clock cost of computing a tessellation
// of n points with the affine model base + perPoint*n. The estimate feeds
// user-facing progress hints only; it never gates behavior.
func EstimateTimeMS(n int, e config.Estimate) float64 {
	return e.BaseMS + e.PerPointMS*float64(n)
}
