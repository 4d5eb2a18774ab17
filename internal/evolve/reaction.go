package evolve

import (
	"fmt"
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// ExactReaction solves the double-well reaction u' = -W'(u) / ε² with
// W(u) = u²(1-u)²/2 exactly over one step. In w = 2u-1 the flow is
// w' = w(1-w²) / 2ε², whose solution is
//
//	w(t) = w0 / sqrt(w0² + (1-w0²) exp(-t/ε²))
type ExactReaction struct {
	Epsilon float64
}

// String describes the evolver.
func (e ExactReaction) String() string {
	return fmt.Sprintf("ExactReaction(ε=%g)", e.Epsilon)
}

// Update implements Evolver.
func (e ExactReaction) Update(f *grid.Field, dt float64) {
	if dt == 0 {
		return
	}
	decay := math.Exp(-dt / (e.Epsilon * e.Epsilon))
	f.Map(func(u float64) float64 {
		w := 2*u - 1
		w /= math.Sqrt(w*w + (1-w*w)*decay)
		return (1 + w) / 2
	})
}
