// Package export renders a tessellation result to raster (PNG) and vector
// (SVG) artwork. Both renderers consume the same Result, plot limits, and
// palette mapping, so exported files always match the live view.
package export

import (
	"fmt"

	"github.com/floretlab/floret"
	"github.com/floretlab/floret/config"
	"github.com/floretlab/floret/geometry"
	"github.com/golang/geo/r2"
)

// Options control output geometry. The same tessellation and colors are
// rendered regardless of format; only the target medium differs.
type Options struct {
	// Size is the square raster size in pixels, and the SVG viewbox size.
	Size int

	// WidthMM and HeightMM are the SVG physical dimensions.
	WidthMM  int
	HeightMM int

	// Background fills the canvas behind the cells.
	Background floret.RGBA

	// DrawSites overlays the spiral points on top of the cells.
	DrawSites bool

	// SiteRadius is the site marker radius in pixels. Zero means 1/400 of
	// Size, floored at 1.
	SiteRadius float64
}

// FromConfig builds Options from the export configuration section.
func FromConfig(c config.Export) Options {
	return Options{
		Size:       c.PNGSize,
		WidthMM:    c.SVGWidthMM,
		HeightMM:   c.SVGHeightMM,
		Background: floret.Hex(c.Background),
	}
}

func (o *Options) siteRadius() float64 {
	if o.SiteRadius > 0 {
		return o.SiteRadius
	}
	r := float64(o.Size) / 400
	if r < 1 {
		r = 1
	}
	return r
}

// check validates the shared render inputs. The palette must have exactly
// one color per bounded cell; anything else is a caller bug.
func check(res *floret.Result, lim floret.Limit, colors []floret.RGBA, opts Options) error {
	if res == nil || res.Tess == nil {
		return fmt.Errorf("%w: nil result", floret.ErrInvalidArgument)
	}
	if len(colors) != res.BoundedCount {
		return fmt.Errorf("%w: %d colors for %d bounded cells",
			floret.ErrInvalidArgument, len(colors), res.BoundedCount)
	}
	if opts.Size <= 0 {
		return fmt.Errorf("%w: non-positive export size %d", floret.ErrInvalidArgument, opts.Size)
	}
	if !(lim.Max > lim.Min) {
		return fmt.Errorf("%w: empty plot range [%g, %g]", floret.ErrInvalidArgument, lim.Min, lim.Max)
	}
	return nil
}

// transform maps world coordinates to pixel coordinates with y flipped so
// the spiral winds the same way on screen and in exports.
type transform struct {
	min, scale, size float64
}

func newTransform(lim floret.Limit, size int) transform {
	return transform{
		min:   lim.Min,
		scale: float64(size) / (lim.Max - lim.Min),
		size:  float64(size),
	}
}

func (t transform) apply(p r2.Point) (x, y float64) {
	return (p.X - t.min) * t.scale, t.size - (p.Y-t.min)*t.scale
}

// cellPolygon collects a bounded cell's vertices in edge order. Edges are
// chained, so the leading endpoint of each edge traces the polygon.
func cellPolygon(edges []geometry.Edge) []r2.Point {
	pts := make([]r2.Point, 0, len(edges))
	for _, e := range edges {
		pts = append(pts, e.P)
	}
	return pts
}
