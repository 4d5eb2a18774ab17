// Package shape synthesizes starting interfaces and coefficient fields.
// Shapes are implicit predicates rasterized into label images.
package shape

import (
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// Predicate reports whether a grid point lies inside a shape.
type Predicate interface {
	Inside(p grid.Point) bool
}

// Ball is a disk of the given radius.
type Ball struct {
	Center grid.Point
	Radius float64
}

// Inside reports whether p is within Radius of Center (boundary included).
func (b Ball) Inside(p grid.Point) bool {
	dx := float64(p.X - b.Center.X)
	dy := float64(p.Y - b.Center.Y)
	return dx*dx+dy*dy <= b.Radius*b.Radius
}

// Flower is a star-shaped curve with radius Radius + Variation*cos(Petals*θ + Phase).
type Flower struct {
	Center    grid.Point
	Radius    float64
	Variation float64
	Petals    int
	Phase     float64
}

// Inside reports whether p lies within the flower's polar radius at p's angle.
func (f Flower) Inside(p grid.Point) bool {
	dx := float64(p.X - f.Center.X)
	dy := float64(p.Y - f.Center.Y)
	if dx == 0 && dy == 0 {
		return f.Radius+f.Variation*math.Cos(f.Phase) > 0
	}
	theta := math.Atan2(dy, dx)
	rho := f.Radius + f.Variation*math.Cos(float64(f.Petals)*theta+f.Phase)
	return math.Hypot(dx, dy) <= rho
}

// DefaultBall returns the starting ball of a square domain of the given size:
// centered at (size/2, size/2) with radius (size*3/5)/2.
func DefaultBall(size int) Ball {
	return Ball{
		Center: grid.Pt(size/2, size/2),
		Radius: float64((size * 3 / 5) / 2),
	}
}

// DefaultFlower returns the five-petal starting flower of a square domain.
func DefaultFlower(size int) Flower {
	return Flower{
		Center:    grid.Pt(size/2, size/2),
		Radius:    float64((size * 3 / 5) / 2),
		Variation: float64((size * 1 / 5) / 2),
		Petals:    5,
	}
}

// Rasterize sets every point of labels to 1 inside the predicate and 0
// outside. It returns the number of foreground points.
func Rasterize(labels *grid.Labels, pred Predicate) int {
	n := 0
	labels.Domain().Points(func(idx int, p grid.Point) {
		if pred.Inside(p) {
			labels.SetAt(idx, 1)
			n++
		} else {
			labels.SetAt(idx, 0)
		}
	})
	return n
}
