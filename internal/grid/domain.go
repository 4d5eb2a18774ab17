// Package grid provides the rectangular integer domain and the dense images
// defined over it.
// Images use row-major storage: index = (y-lower.Y)*width + (x-lower.X).
package grid

import "fmt"

// Point is an integer grid point.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// String returns a summary of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Neighbors8 lists the eight neighbor offsets, counter-clockwise from +X.
// Even entries are the 4-neighbors.
var Neighbors8 = [8]Point{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
}

// Domain is an axis-aligned rectangle of grid points, bounds inclusive.
type Domain struct {
	lower Point
	upper Point
}

// NewDomain creates a domain spanning lower..upper (inclusive).
// It fails if lower is not componentwise <= upper.
func NewDomain(lower, upper Point) (Domain, error) {
	if lower.X > upper.X || lower.Y > upper.Y {
		return Domain{}, fmt.Errorf("invalid domain: lower %v exceeds upper %v", lower, upper)
	}
	return Domain{lower: lower, upper: upper}, nil
}

// SquareDomain returns the domain (0,0)..(size,size).
func SquareDomain(size int) (Domain, error) {
	return NewDomain(Pt(0, 0), Pt(size, size))
}

// Lower returns the lower bound.
func (d Domain) Lower() Point { return d.lower }

// Upper returns the upper bound.
func (d Domain) Upper() Point { return d.upper }

// Width returns the number of columns.
func (d Domain) Width() int { return d.upper.X - d.lower.X + 1 }

// Height returns the number of rows.
func (d Domain) Height() int { return d.upper.Y - d.lower.Y + 1 }

// Size returns the total number of points.
func (d Domain) Size() int { return d.Width() * d.Height() }

// Contains returns true if p lies inside the domain.
func (d Domain) Contains(p Point) bool {
	return p.X >= d.lower.X && p.X <= d.upper.X &&
		p.Y >= d.lower.Y && p.Y <= d.upper.Y
}

// Index returns the row-major offset of p. p must be inside the domain.
func (d Domain) Index(p Point) int {
	return (p.Y-d.lower.Y)*d.Width() + (p.X - d.lower.X)
}

// PointAt is the inverse of Index.
func (d Domain) PointAt(idx int) Point {
	w := d.Width()
	return Point{X: d.lower.X + idx%w, Y: d.lower.Y + idx/w}
}

// Points calls fn for every point in row-major order.
func (d Domain) Points(fn func(idx int, p Point)) {
	idx := 0
	for y := d.lower.Y; y <= d.upper.Y; y++ {
		for x := d.lower.X; x <= d.upper.X; x++ {
			fn(idx, Point{X: x, Y: y})
			idx++
		}
	}
}

// String returns a summary of the domain.
func (d Domain) String() string {
	return fmt.Sprintf("Domain(%v..%v, %dx%d)", d.lower, d.upper, d.Width(), d.Height())
}
