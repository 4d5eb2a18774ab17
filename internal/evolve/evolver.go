// Package evolve provides the interface evolution methods.
//
// Every method implements Evolver: one Update call advances an implicit
// function by one time step, in place. A zero time step never modifies the
// field. Numerical stability is the caller's concern; diverging values are
// not detected.
package evolve

import "github.com/talgya/deformations/internal/grid"

// Evolver advances an implicit function by one time step.
type Evolver interface {
	Update(f *grid.Field, dt float64)
}

// LieSplitting applies First then Second for the full step.
type LieSplitting struct {
	First  Evolver
	Second Evolver
}

// Update implements Evolver.
func (s LieSplitting) Update(f *grid.Field, dt float64) {
	if dt == 0 {
		return
	}
	s.First.Update(f, dt)
	s.Second.Update(f, dt)
}

// TODO: add a Strang variant (half step, full step, half step) once the
// phase-field driver exposes a splitting choice.
