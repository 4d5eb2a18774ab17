package render

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/talgya/deformations/internal/grid"
)

var (
	rasterBackground = gg.RGB(1, 1, 1)
	rasterInside     = gg.RGB(0.78, 0.82, 0.9)
	rasterContour    = gg.RGB(0.85, 0.1, 0.1)
)

// Raster draws the domain as a PNG image: one Scale×Scale square per grid
// point, inside points shaded, the iso-contour stroked on top. The y axis
// points up.
type Raster struct {
	Options Options
}

// Extension implements Writer.
func (r Raster) Extension() string { return ".png" }

// Write implements Writer.
func (r Raster) Write(f *grid.Field, name string) (Artifact, error) {
	d := f.Domain()
	s := float64(max(1, r.Options.Scale))
	width, height := d.Width()*int(s), d.Height()*int(s)
	lo := d.Lower()

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(rasterBackground)

	toPixel := func(x, y float64) (float64, float64) {
		return (x - float64(lo.X) + 0.5) * s, float64(height) - (y-float64(lo.Y)+0.5)*s
	}

	dc.SetColor(rasterInside.Color())
	inside := 0
	d.Points(func(i int, p grid.Point) {
		if f.At(i) > r.Options.Threshold {
			px, py := toPixel(float64(p.X), float64(p.Y))
			dc.DrawRectangle(px-s/2, py-s/2, s, s)
			inside++
		}
	})
	if inside > 0 {
		if err := dc.Fill(); err != nil {
			return Artifact{}, err
		}
	}

	contours := Contours(f, r.Options.Threshold)
	dc.SetColor(rasterContour.Color())
	dc.SetLineWidth(max(1, s/4))
	for _, c := range contours {
		for k, pt := range c.Points {
			px, py := toPixel(pt.X, pt.Y)
			if k == 0 {
				dc.MoveTo(px, py)
			} else {
				dc.LineTo(px, py)
			}
		}
		if c.Closed {
			dc.ClosePath()
		}
	}
	if len(contours) > 0 {
		if err := dc.Stroke(); err != nil {
			return Artifact{}, err
		}
	}

	path := name + r.Extension()
	n, err := writeFile(path, func(w io.Writer) error { return dc.EncodePNG(w) })
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Bytes: n, Contours: len(contours), Length: Length(contours)}, nil
}
