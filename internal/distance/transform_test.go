package distance

import (
	"math"
	"testing"

	"github.com/talgya/deformations/internal/grid"
	"github.com/talgya/deformations/internal/shape"
)

// bruteSquared is the O(n²) reference transform.
func bruteSquared(d grid.Domain, feature func(int) bool) []float64 {
	out := make([]float64, d.Size())
	d.Points(func(i int, p grid.Point) {
		best := math.Inf(1)
		d.Points(func(j int, q grid.Point) {
			if !feature(j) {
				return
			}
			dx, dy := float64(p.X-q.X), float64(p.Y-q.Y)
			best = min(best, dx*dx+dy*dy)
		})
		out[i] = best
	})
	return out
}

func TestSquaredEDTMatchesBruteForce(t *testing.T) {
	d, err := grid.NewDomain(grid.Pt(-3, 2), grid.Pt(13, 12))
	if err != nil {
		t.Fatal(err)
	}
	labels := grid.NewLabels(d)
	shape.Rasterize(labels, shape.Flower{Center: grid.Pt(5, 7), Radius: 4, Variation: 1.5, Petals: 3})
	feature := func(i int) bool { return labels.At(i) != 0 }

	got := SquaredEDT(d, feature)
	want := bruteSquared(d, feature)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %v: got %g, want %g", d.PointAt(i), got[i], want[i])
		}
	}
}

func TestSquaredEDTNoFeature(t *testing.T) {
	d, _ := grid.SquareDomain(4)
	for i, v := range SquaredEDT(d, func(int) bool { return false }) {
		if !math.IsInf(v, 1) {
			t.Fatalf("point %d: got %g, want +Inf", i, v)
		}
	}
}

func TestSignedDistanceSigns(t *testing.T) {
	d, _ := grid.SquareDomain(40)
	labels := grid.NewLabels(d)
	shape.Rasterize(labels, shape.DefaultBall(40))

	f := SignedDistance(labels)
	for i, v := range f.Values() {
		inside := labels.At(i) != 0
		if inside && v < 0.5 {
			t.Fatalf("foreground %v has value %g", d.PointAt(i), v)
		}
		if !inside && v > -0.5 {
			t.Fatalf("background %v has value %g", d.PointAt(i), v)
		}
	}

	// Center of a radius-12 ball lies about 12 away from the background.
	c := f.Get(grid.Pt(20, 20))
	if math.Abs(c-11.5) > 1 {
		t.Errorf("center value %g, want about 11.5", c)
	}
	if got, want := f.CountAbove(0), labels.CountAbove(0); got != want {
		t.Errorf("positive points %d, foreground points %d", got, want)
	}
}

func TestSignedDistanceUniform(t *testing.T) {
	d, _ := grid.SquareDomain(5)
	labels := grid.NewLabels(d)
	f := SignedDistance(labels)
	diag := math.Hypot(6, 6)
	for _, v := range f.Values() {
		if math.Abs(v+diag) > 1e-12 {
			t.Fatalf("empty foreground value %g, want %g", v, -diag)
		}
	}
}

func TestSignedDistanceOf(t *testing.T) {
	d, _ := grid.SquareDomain(20)
	labels := grid.NewLabels(d)
	shape.Rasterize(labels, shape.DefaultBall(20))
	f := SignedDistance(labels)

	g := SignedDistanceOf(f, 0)
	for i := range f.Values() {
		if f.At(i) != g.At(i) {
			t.Fatalf("rebuild differs at %v: %g vs %g", d.PointAt(i), f.At(i), g.At(i))
		}
	}
}
