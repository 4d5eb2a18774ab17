package evolve

import (
	"fmt"
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// gradientFloor regularizes |∇u| in the diffusivity a/|∇u|.
const gradientFloor = 1e-2

// LevelSet is the Weickert-Kühne level-set scheme for
//
//	u_t = g |∇u| div(a ∇u / |∇u|) + k b |∇u|
//
// The curvature term is integrated with additive operator splitting (one
// semi-implicit tridiagonal solve per axis, averaged); the balloon term is
// explicit. Foreground is positive, so k > 0 inflates the region.
type LevelSet struct {
	A, B, G *grid.Field
	K       float64

	coef, weight, rhs, sumX []float64
	line                    lineBuffers
}

type lineBuffers struct {
	lower, diag, upper, rhs, x, scratch []float64
}

func newLineBuffers(n int) lineBuffers {
	return lineBuffers{
		lower:   make([]float64, n),
		diag:    make([]float64, n),
		upper:   make([]float64, n),
		rhs:     make([]float64, n),
		x:       make([]float64, n),
		scratch: make([]float64, n),
	}
}

// NewLevelSet creates a level-set evolver with diffusion a, balloon weight b,
// speed g and balloon force k. The coefficient fields must share the domain
// of the evolved field.
func NewLevelSet(a, b, g *grid.Field, k float64) *LevelSet {
	return &LevelSet{A: a, B: b, G: g, K: k}
}

// String describes the evolver.
func (e *LevelSet) String() string {
	return fmt.Sprintf("LevelSet(Weickert-Kühne AOS, k=%g)", e.K)
}

// Update implements Evolver.
func (e *LevelSet) Update(f *grid.Field, dt float64) {
	if dt == 0 {
		return
	}
	d := f.Domain()
	w, h := d.Width(), d.Height()
	n := d.Size()
	if len(e.coef) != n {
		e.coef = make([]float64, n)
		e.weight = make([]float64, n)
		e.rhs = make([]float64, n)
		e.sumX = make([]float64, n)
		e.line = newLineBuffers(max(w, h))
	}

	u := f.Values()
	d.Points(func(i int, p grid.Point) {
		ux := (f.Clamped(p.X+1, p.Y) - f.Clamped(p.X-1, p.Y)) / 2
		uy := (f.Clamped(p.X, p.Y+1) - f.Clamped(p.X, p.Y-1)) / 2
		norm := math.Sqrt(ux*ux + uy*uy)
		reg := math.Sqrt(ux*ux + uy*uy + gradientFloor*gradientFloor)
		e.coef[i] = e.A.At(i) / reg
		e.weight[i] = e.G.At(i) * reg
		e.rhs[i] = u[i] + dt*e.K*e.B.At(i)*norm
	})

	const m = 2.0 // number of axes
	tau := m * dt

	// x axis
	for y := 0; y < h; y++ {
		e.solveLine(w, func(k int) int { return y*w + k }, tau)
		for k := 0; k < w; k++ {
			e.sumX[y*w+k] = e.line.x[k]
		}
	}
	// y axis
	for x := 0; x < w; x++ {
		e.solveLine(h, func(k int) int { return k*w + x }, tau)
		for k := 0; k < h; k++ {
			i := k*w + x
			u[i] = (e.sumX[i] + e.line.x[k]) / m
		}
	}
}

// solveLine solves (I - tau A_l) x = rhs along one grid line of length n,
// at indices at(0..n-1), with reflecting ends.
func (e *LevelSet) solveLine(n int, at func(k int) int, tau float64) {
	lb := e.line
	for k := 0; k < n; k++ {
		i := at(k)
		var left, right float64
		if k > 0 {
			left = tau * e.weight[i] * (e.coef[i] + e.coef[at(k-1)]) / 2
		}
		if k < n-1 {
			right = tau * e.weight[i] * (e.coef[i] + e.coef[at(k+1)]) / 2
		}
		lb.lower[k] = -left
		lb.upper[k] = -right
		lb.diag[k] = 1 + left + right
		lb.rhs[k] = e.rhs[i]
	}
	solveTridiagonal(lb.lower[:n], lb.diag[:n], lb.upper[:n], lb.rhs[:n], lb.x[:n], lb.scratch[:n])
}
