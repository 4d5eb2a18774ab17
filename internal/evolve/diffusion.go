package evolve

import (
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// ExactDiffusion solves the discrete heat equation u_t = Δu exactly over one
// step, with reflecting (Neumann) borders. The 5-point Laplacian splits into
// commuting 1D operators, each diagonalized by the orthonormal DCT-II basis,
// so exp(dt Δ) is applied as one dense propagator per axis.
type ExactDiffusion struct {
	kernels map[int]*propagator
	line    []float64
	out     []float64
}

// propagator is exp(dt L) for the 1D Neumann Laplacian L of size n.
type propagator struct {
	dt float64
	m  []float64 // n×n, row-major
}

// NewExactDiffusion creates a diffusion evolver.
func NewExactDiffusion() *ExactDiffusion {
	return &ExactDiffusion{kernels: make(map[int]*propagator)}
}

// String describes the evolver.
func (e *ExactDiffusion) String() string { return "ExactDiffusion" }

// Update implements Evolver.
func (e *ExactDiffusion) Update(f *grid.Field, dt float64) {
	if dt == 0 {
		return
	}
	d := f.Domain()
	w, h := d.Width(), d.Height()
	if n := max(w, h); len(e.line) < n {
		e.line = make([]float64, n)
		e.out = make([]float64, n)
	}
	u := f.Values()

	px := e.kernel(w, dt)
	for y := 0; y < h; y++ {
		row := u[y*w : (y+1)*w]
		copy(e.line, row)
		px.apply(e.line[:w], row)
	}

	py := e.kernel(h, dt)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			e.line[y] = u[y*w+x]
		}
		py.apply(e.line[:h], e.out[:h])
		for y := 0; y < h; y++ {
			u[y*w+x] = e.out[y]
		}
	}
}

func (e *ExactDiffusion) kernel(n int, dt float64) *propagator {
	if p, ok := e.kernels[n]; ok && p.dt == dt {
		return p
	}
	p := newPropagator(n, dt)
	e.kernels[n] = p
	return p
}

func newPropagator(n int, dt float64) *propagator {
	basis := make([]float64, n*n) // basis[k*n+i] = v_k(i)
	decay := make([]float64, n)
	for k := 0; k < n; k++ {
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		for i := 0; i < n; i++ {
			basis[k*n+i] = scale * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		s := math.Sin(math.Pi * float64(k) / (2 * float64(n)))
		decay[k] = math.Exp(-4 * s * s * dt)
	}

	m := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += decay[k] * basis[k*n+i] * basis[k*n+j]
			}
			m[i*n+j] = sum
		}
	}
	return &propagator{dt: dt, m: m}
}

// apply writes m·in to out. in and out must not alias.
func (p *propagator) apply(in, out []float64) {
	n := len(in)
	for i := 0; i < n; i++ {
		row := p.m[i*n : (i+1)*n]
		sum := 0.0
		for j, v := range in {
			sum += row[j] * v
		}
		out[i] = sum
	}
}
