package render

import (
	"fmt"
	"io"
	"iter"

	"honnef.co/go/curve"

	"github.com/talgya/deformations/internal/grid"
)

// Vector draws the domain as an SVG document in grid coordinates: inside
// points as unit squares, the iso-contour as a path. With Smooth > 0 the
// contour is simplified into cubic Béziers to that accuracy.
type Vector struct {
	Options Options
}

// Extension implements Writer.
func (v Vector) Extension() string { return ".svg" }

// Write implements Writer.
func (v Vector) Write(f *grid.Field, name string) (Artifact, error) {
	contours := Contours(f, v.Options.Threshold)
	path := name + v.Extension()
	n, err := writeFile(path, func(w io.Writer) error {
		return v.encode(w, f, contours)
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Bytes: n, Contours: len(contours), Length: Length(contours)}, nil
}

func (v Vector) encode(w io.Writer, f *grid.Field, contours []Contour) error {
	d := f.Domain()
	lo, up := d.Lower(), d.Upper()
	scale := max(1, v.Options.Scale)

	var cells curve.BezPath
	d.Points(func(i int, p grid.Point) {
		if f.At(i) <= v.Options.Threshold {
			return
		}
		x, y := float64(p.X)-0.5, float64(p.Y)-0.5
		cells.MoveTo(curve.Pt(x, y))
		cells.LineTo(curve.Pt(x+1, y))
		cells.LineTo(curve.Pt(x+1, y+1))
		cells.LineTo(curve.Pt(x, y+1))
		cells.ClosePath()
	})

	var outline iter.Seq[curve.PathElement] = ContoursPath(contours).Elements()
	if v.Options.Smooth > 0 {
		outline = curve.Simplify(outline, v.Options.Smooth, curve.DefaultSimplifyOptions)
	}
	opts := curve.SVGOptions{MaxPrecision: 3}

	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %d %d\" width=\"%d\" height=\"%d\">\n",
		float64(lo.X)-0.5, float64(lo.Y)-0.5, d.Width(), d.Height(),
		d.Width()*scale, d.Height()*scale); err != nil {
		return err
	}
	// Flip y so the drawing matches the raster orientation.
	if _, err := fmt.Fprintf(w, "<g transform=\"matrix(1 0 0 -1 0 %d)\">\n", lo.Y+up.Y); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w,
		"<rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%d\" fill=\"white\" stroke=\"black\" stroke-width=\"0.1\"/>\n",
		float64(lo.X)-0.5, float64(lo.Y)-0.5, d.Width(), d.Height()); err != nil {
		return err
	}
	if len(cells) > 0 {
		if _, err := io.WriteString(w, `<path fill="#c7d1e6" d="`); err != nil {
			return err
		}
		if err := cells.WriteSVG(w, opts); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\"/>\n"); err != nil {
			return err
		}
	}
	if len(contours) > 0 {
		if _, err := io.WriteString(w, `<path fill="none" stroke="#d91a1a" stroke-width="0.2" d="`); err != nil {
			return err
		}
		if err := curve.WriteSVG(w, outline, opts); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\"/>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</g>\n</svg>\n")
	return err
}
