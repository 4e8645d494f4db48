// Package floret generates Fermat-spiral point sets and tessellates them
// into Delaunay/Voronoi artwork.
//
// # Overview
//
// floret is the computation core behind an interactive spiral-art viewer.
// It turns a small parameter tuple (angle range, sample count, optional
// truncation) into a Voronoi tessellation, and keeps parameter sweeps
// interactive through a layered cache: a per-session result cache, an
// optional pre-baked read-only disk store, and a memoized tessellation
// cache keyed by point-array content.
//
// # Quick Start
//
//	import "github.com/floretlab/floret"
//
//	eng, err := floret.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Close()
//
//	res, err := eng.Compute(ctx, floret.Params{
//		AngleStart:  0,
//		AngleEnd:    100,
//		SampleCount: 300,
//	})
//
// The result carries the generated points, the tessellation, and the
// bounded-cell count used to size color palettes. Rendering helpers live
// in the export subpackage; both raster and vector exports consume the
// same Result, so on-screen and exported artwork always match.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Params, Result, palettes, plot limits
//   - geometry: Delaunay triangulation and Voronoi cell construction
//   - cache: session cache, memoized compute cache, read-only disk stores
//   - config: typed configuration with environment overlays and reload
//   - export: PNG and SVG renderers
//
// # Coordinate System
//
// Points use github.com/golang/geo's r2.Point. The spiral is the Fermat
// spiral x = sqrt(theta)*cos(theta), y = sqrt(theta)*sin(theta) for
// theta >= 0, so the pattern is centered on the origin and plot limits
// are symmetric.
package floret

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 1
)
