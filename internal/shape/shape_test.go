package shape

import (
	"math"
	"testing"

	"github.com/talgya/deformations/internal/grid"
)

func square(t *testing.T, size int) grid.Domain {
	t.Helper()
	d, err := grid.SquareDomain(size)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestBallAreaApproximatesDisk(t *testing.T) {
	for _, size := range []int{32, 64, 128} {
		d := square(t, size)
		labels := grid.NewLabels(d)
		ball := DefaultBall(size)
		n := Rasterize(labels, ball)

		want := math.Pi * ball.Radius * ball.Radius
		// Gauss circle problem: error grows like the perimeter.
		tol := 2 * math.Pi * ball.Radius
		if math.Abs(float64(n)-want) > tol {
			t.Errorf("size %d: ball area %d, want %.1f ± %.1f", size, n, want, tol)
		}
		if got := labels.CountAbove(0); got != n {
			t.Errorf("size %d: CountAbove = %d, Rasterize = %d", size, got, n)
		}
	}
}

func TestDefaultBallRadius(t *testing.T) {
	b := DefaultBall(64)
	if b.Radius != 19 || b.Center != grid.Pt(32, 32) {
		t.Errorf("DefaultBall(64) = %+v", b)
	}
}

func TestFlowerBetweenBalls(t *testing.T) {
	size := 100
	d := square(t, size)
	f := DefaultFlower(size)

	inner := Ball{Center: f.Center, Radius: f.Radius - f.Variation}
	outer := Ball{Center: f.Center, Radius: f.Radius + f.Variation}
	d.Points(func(_ int, p grid.Point) {
		if inner.Inside(p) && !f.Inside(p) {
			t.Fatalf("%v inside inner ball but outside flower", p)
		}
		if f.Inside(p) && !outer.Inside(p) {
			t.Fatalf("%v inside flower but outside outer ball", p)
		}
	})
	if !f.Inside(f.Center) {
		t.Error("flower center should be inside")
	}
}

func TestSpeedField(t *testing.T) {
	d := square(t, 32)

	flat := SpeedField(d, 0, 1)
	if lo, hi := flat.Range(); lo != 1 || hi != 1 {
		t.Errorf("flat speed range = [%g, %g], want [1, 1]", lo, hi)
	}

	a := SpeedField(d, 0.5, 7)
	b := SpeedField(d, 0.5, 7)
	for i := range a.Values() {
		if a.At(i) != b.At(i) {
			t.Fatalf("speed field not deterministic at %d", i)
		}
	}
	lo, hi := a.Range()
	if lo < minSpeed || hi > 1.5 {
		t.Errorf("noisy speed range = [%g, %g]", lo, hi)
	}
	if lo == hi {
		t.Error("noisy speed field is constant")
	}
}
