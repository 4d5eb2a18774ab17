package evolve

import (
	"fmt"
	"math"

	"github.com/talgya/deformations/internal/distance"
	"github.com/talgya/deformations/internal/grid"
)

// frozenMagnitude is the value a point is pinned to when its switch is
// refused by the topological predicate.
const frozenMagnitude = 1e-3

// LocalLevelSet evolves the partition {u > 0} by curvature flow inside a
// narrow band |u| < Width. A point changes side only when the topological
// predicate allows it. When an accepted switch reaches the rim of the band
// the front is about to leave it: u is re-initialized as the signed distance
// of the current partition and a new band is built.
type LocalLevelSet struct {
	G         *grid.Field
	Width     float64
	Predicate TopologicalPredicate

	domain   grid.Domain
	band     []int
	inBand   []bool
	next     []float64
	rebuilds int
}

// NewLocalLevelSet creates a narrow-band evolver with speed g.
func NewLocalLevelSet(g *grid.Field, width float64, pred TopologicalPredicate) *LocalLevelSet {
	return &LocalLevelSet{G: g, Width: width, Predicate: pred}
}

// String describes the evolver.
func (e *LocalLevelSet) String() string {
	return fmt.Sprintf("LocalLevelSet(width=%g, band=%d points, rebuilds=%d, topology=%T)",
		e.Width, len(e.band), e.rebuilds, e.Predicate)
}

// BandSize returns the number of points in the current band.
func (e *LocalLevelSet) BandSize() int { return len(e.band) }

// Rebuilds returns how many times the band was rebuilt.
func (e *LocalLevelSet) Rebuilds() int { return e.rebuilds }

// Update implements Evolver.
func (e *LocalLevelSet) Update(f *grid.Field, dt float64) {
	if dt == 0 {
		return
	}
	d := f.Domain()
	if e.inBand == nil || e.domain != d {
		e.buildBand(f)
	}

	// Jacobi pass: tentative values from the current field.
	for k, i := range e.band {
		p := d.PointAt(i)
		e.next[k] = f.At(i) + dt*e.G.At(i)*curvatureTerm(f, p)
	}

	inside := func(q grid.Point) bool {
		return d.Contains(q) && f.At(d.Index(q)) > 0
	}

	exited := false
	for k, i := range e.band {
		old, nv := f.At(i), e.next[k]
		if (old > 0) == (nv > 0) {
			f.SetAt(i, nv)
			continue
		}
		if e.Predicate.Allowed(d.PointAt(i), inside) {
			f.SetAt(i, nv)
			if e.onRim(d, i) {
				exited = true
			}
			continue
		}
		if old > 0 {
			f.SetAt(i, frozenMagnitude)
		} else {
			f.SetAt(i, -frozenMagnitude)
		}
	}

	if exited {
		f.CopyFrom(distance.SignedDistanceOf(f, 0))
		e.buildBand(f)
		e.rebuilds++
	}
}

func (e *LocalLevelSet) buildBand(f *grid.Field) {
	e.domain = f.Domain()
	e.inBand = make([]bool, f.Len())
	e.band = e.band[:0]
	for i, v := range f.Values() {
		if math.Abs(v) < e.Width {
			e.inBand[i] = true
			e.band = append(e.band, i)
		}
	}
	if cap(e.next) < len(e.band) {
		e.next = make([]float64, len(e.band))
	}
	e.next = e.next[:len(e.band)]
}

// onRim reports whether a band point has a 4-neighbor outside the band.
// Neighbors outside the domain do not count.
func (e *LocalLevelSet) onRim(d grid.Domain, i int) bool {
	p := d.PointAt(i)
	for k := 0; k < 8; k += 2 {
		q := p.Add(grid.Neighbors8[k])
		if d.Contains(q) && !e.inBand[d.Index(q)] {
			return true
		}
	}
	return false
}

// curvatureTerm returns κ|∇u| = (uxx uy² - 2 ux uy uxy + uyy ux²) / |∇u|²
// by central differences with replicated borders.
func curvatureTerm(f *grid.Field, p grid.Point) float64 {
	x, y := p.X, p.Y
	c := f.Clamped(x, y)
	e, w := f.Clamped(x+1, y), f.Clamped(x-1, y)
	n, s := f.Clamped(x, y+1), f.Clamped(x, y-1)

	ux := (e - w) / 2
	uy := (n - s) / 2
	uxx := e - 2*c + w
	uyy := n - 2*c + s
	uxy := (f.Clamped(x+1, y+1) - f.Clamped(x+1, y-1) - f.Clamped(x-1, y+1) + f.Clamped(x-1, y-1)) / 4

	den := ux*ux + uy*uy
	if den < 1e-12 {
		return 0
	}
	return (uxx*uy*uy - 2*ux*uy*uxy + uyy*ux*ux) / den
}
