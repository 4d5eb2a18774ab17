package render

import (
	"honnef.co/go/curve"

	"github.com/talgya/deformations/internal/grid"
)

// Contour is one connected piece of an iso-line, in grid coordinates.
type Contour struct {
	Points []curve.Point
	Closed bool
}

// Path converts the contour to a Bézier path of line segments.
func (c Contour) Path() curve.BezPath {
	var p curve.BezPath
	if len(c.Points) == 0 {
		return p
	}
	p.MoveTo(c.Points[0])
	for _, pt := range c.Points[1:] {
		p.LineTo(pt)
	}
	if c.Closed {
		p.ClosePath()
	}
	return p
}

// ContoursPath joins all contours into one path.
func ContoursPath(cs []Contour) curve.BezPath {
	var p curve.BezPath
	for _, c := range cs {
		p = append(p, c.Path()...)
	}
	return p
}

// Length returns the total length of the contours.
func Length(cs []Contour) float64 {
	return ContoursPath(cs).Perimeter(1e-9)
}

type segment struct{ a, b int } // edge ids

// Contours extracts the iso-line {f = threshold} by marching squares with
// linear interpolation along cell edges. Saddle cells are resolved with the
// cell-center average. Contours touching the domain border are open.
func Contours(f *grid.Field, threshold float64) []Contour {
	d := f.Domain()
	w, h := d.Width(), d.Height()
	lo := d.Lower()
	u := f.Values()

	// Edge ids: horizontal edge from (x,y) is 2*(y*w+x), vertical is +1.
	hEdge := func(x, y int) int { return 2 * (y*w + x) }
	vEdge := func(x, y int) int { return 2*(y*w+x) + 1 }
	crossing := func(id int) curve.Point {
		cell := id / 2
		x, y := cell%w, cell/w
		x2, y2 := x+1, y
		if id%2 == 1 {
			x2, y2 = x, y+1
		}
		a, b := u[y*w+x], u[y2*w+x2]
		t := 0.5
		if a != b {
			t = (threshold - a) / (b - a)
		}
		return curve.Pt(
			float64(lo.X)+float64(x)+t*float64(x2-x),
			float64(lo.Y)+float64(y)+t*float64(y2-y),
		)
	}

	var segs []segment
	for y := 0; y+1 < h; y++ {
		for x := 0; x+1 < w; x++ {
			v0, v1 := u[y*w+x], u[y*w+x+1]
			v2, v3 := u[(y+1)*w+x+1], u[(y+1)*w+x]
			var c int
			if v0 > threshold {
				c |= 1
			}
			if v1 > threshold {
				c |= 2
			}
			if v2 > threshold {
				c |= 4
			}
			if v3 > threshold {
				c |= 8
			}
			bottom, right := hEdge(x, y), vEdge(x+1, y)
			top, left := hEdge(x, y+1), vEdge(x, y)
			centerIn := (v0+v1+v2+v3)/4 > threshold

			switch c {
			case 0, 15:
			case 1, 14:
				segs = append(segs, segment{left, bottom})
			case 2, 13:
				segs = append(segs, segment{bottom, right})
			case 3, 12:
				segs = append(segs, segment{left, right})
			case 4, 11:
				segs = append(segs, segment{right, top})
			case 6, 9:
				segs = append(segs, segment{bottom, top})
			case 7, 8:
				segs = append(segs, segment{left, top})
			case 5:
				if centerIn {
					segs = append(segs, segment{bottom, right}, segment{top, left})
				} else {
					segs = append(segs, segment{left, bottom}, segment{right, top})
				}
			case 10:
				if centerIn {
					segs = append(segs, segment{bottom, left}, segment{right, top})
				} else {
					segs = append(segs, segment{bottom, right}, segment{top, left})
				}
			}
		}
	}
	return link(segs, crossing)
}

// link chains segments sharing an edge into contours.
func link(segs []segment, at func(edge int) curve.Point) []Contour {
	byEdge := make(map[int][]int, 2*len(segs))
	for i, s := range segs {
		byEdge[s.a] = append(byEdge[s.a], i)
		byEdge[s.b] = append(byEdge[s.b], i)
	}
	used := make([]bool, len(segs))

	walk := func(start, s int) Contour {
		c := Contour{Points: []curve.Point{at(start)}}
		cur := start
		for {
			used[s] = true
			next := segs[s].b
			if next == cur {
				next = segs[s].a
			}
			if next == start {
				c.Closed = true
				return c
			}
			c.Points = append(c.Points, at(next))
			cur = next
			found := -1
			for _, o := range byEdge[cur] {
				if !used[o] {
					found = o
					break
				}
			}
			if found < 0 {
				return c
			}
			s = found
		}
	}

	var out []Contour
	for i, s := range segs {
		if used[i] {
			continue
		}
		switch {
		case len(byEdge[s.a]) == 1:
			out = append(out, walk(s.a, i))
		case len(byEdge[s.b]) == 1:
			out = append(out, walk(s.b, i))
		}
	}
	for i, s := range segs {
		if !used[i] {
			out = append(out, walk(s.a, i))
		}
	}
	return out
}
