package export

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/floretlab/floret"
)

// PNG renders the tessellation to a square raster image. Bounded cells are
// filled with the palette colors in cell order; unbounded cells have
// infinite extent and are left as background, matching the SVG renderer.
func PNG(w io.Writer, res *floret.Result, lim floret.Limit, colors []floret.RGBA, opts Options) error {
	if err := check(res, lim, colors, opts); err != nil {
		return err
	}

	size := opts.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background.Color()), image.Point{}, draw.Src)

	tr := newTransform(lim, size)
	ras := vector.NewRasterizer(size, size)

	ci := 0
	for i := range res.Tess.Cells {
		cell := &res.Tess.Cells[i]
		if !cell.Bounded {
			continue
		}
		col := colors[ci]
		ci++

		poly := cellPolygon(cell.Edges)
		if len(poly) < 3 {
			continue
		}
		ras.Reset(size, size)
		x, y := tr.apply(poly[0])
		ras.MoveTo(float32(x), float32(y))
		for _, p := range poly[1:] {
			x, y := tr.apply(p)
			ras.LineTo(float32(x), float32(y))
		}
		ras.ClosePath()
		ras.Draw(img, img.Bounds(), image.NewUniform(col.Color()), image.Point{})
	}

	if opts.DrawSites {
		drawSites(img, ras, res, tr, opts)
	}
	return png.Encode(w, img)
}

// drawSites overlays each spiral point as a small filled disc, approximated
// by a 12-gon; the rasterizer has no arc primitive.
func drawSites(img *image.RGBA, ras *vector.Rasterizer, res *floret.Result, tr transform, opts Options) {
	const segments = 12
	r := opts.siteRadius()
	src := image.NewUniform(floret.RGB(0, 0, 0).Color())

	for _, p := range res.Points {
		cx, cy := tr.apply(p)
		ras.Reset(opts.Size, opts.Size)
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float64(s) / segments
			x := float32(cx + r*math.Cos(a))
			y := float32(cy + r*math.Sin(a))
			if s == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}
		ras.ClosePath()
		ras.Draw(img, img.Bounds(), src, image.Point{})
	}
}
