package export

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/floretlab/floret"
)

// SVG renders the tessellation as a vector image with physical dimensions
// (millimeters). The viewbox matches the raster pixel grid so PNG and SVG
// exports of the same result are geometrically identical.
func SVG(w io.Writer, res *floret.Result, lim floret.Limit, colors []floret.RGBA, opts Options) error {
	if err := check(res, lim, colors, opts); err != nil {
		return err
	}

	size := opts.Size
	widthMM, heightMM := opts.WidthMM, opts.HeightMM
	if widthMM <= 0 {
		widthMM = 200
	}
	if heightMM <= 0 {
		heightMM = widthMM
	}

	canvas := svg.New(w)
	canvas.StartviewUnit(widthMM, heightMM, "mm", 0, 0, size, size)
	canvas.Rect(0, 0, size, size, "fill:"+opts.Background.HexString())

	tr := newTransform(lim, size)
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
		xs := make([]int, len(poly))
		ys := make([]int, len(poly))
		for j, p := range poly {
			x, y := tr.apply(p)
			xs[j] = int(x + 0.5)
			ys[j] = int(y + 0.5)
		}
		canvas.Polygon(xs, ys, "fill:"+col.HexString()+";stroke:none")
	}

	if opts.DrawSites {
		r := int(opts.siteRadius() + 0.5)
		if r < 1 {
			r = 1
		}
		for _, p := range res.Points {
			x, y := tr.apply(p)
			canvas.Circle(int(x+0.5), int(y+0.5), r, "fill:#000000")
		}
	}

	canvas.End()
	return nil
}
