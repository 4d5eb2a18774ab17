package evolve

import (
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// Profile maps a signed distance to the stationary phase-field profile of
// width Epsilon: 1/2 (1 + tanh(v / 2ε)). It is strictly increasing and maps
// into (0, 1), with 1/2 on the zero level set.
type Profile struct {
	Epsilon float64
}

// At evaluates the profile.
func (p Profile) At(v float64) float64 {
	return 0.5 * (1 + math.Tanh(v/(2*p.Epsilon)))
}

// Apply maps every value of f through the profile.
func (p Profile) Apply(f *grid.Field) {
	f.Map(p.At)
}
