// Package engine provides the iteration loop that drives an interface
// evolution: it steps the evolver, writes artifacts at the display cadence
// and records area diagnostics.
package engine

import (
	"log/slog"

	"github.com/talgya/deformations/internal/config"
)

// Engine drives the iteration counter through a fixed schedule: Start,
// Start+Stride, ... up to and including Max.
type Engine struct {
	Iteration   int // last iteration processed, 0 before the first
	Start       int
	Stride      int
	Max         int
	DisplayStep int
	Running     bool

	// Callbacks, populated during setup.
	OnStep    func(i int)      // every iteration
	OnDisplay func(i, seq int) // every iteration divisible by DisplayStep
}

// NewEngine creates an engine for the algorithm's schedule.
func NewEngine(alg config.Algorithm, displayStep, max int) *Engine {
	start, stride := Schedule(alg, displayStep)
	return &Engine{
		Start:       start,
		Stride:      stride,
		Max:         max,
		DisplayStep: displayStep,
	}
}

// Schedule returns the first iteration and the stride of the loop. The
// phase field visits only multiples of the display step, one update each;
// the level-set variants visit every iteration.
func Schedule(alg config.Algorithm, displayStep int) (start, stride int) {
	if alg == config.PhaseField {
		return displayStep, displayStep
	}
	return 1, 1
}

// Sequence returns the artifact sequence number written at iteration i.
// The starting artifact is sequence 1.
func Sequence(i, displayStep int) int {
	return i/displayStep + 1
}

// Iterations returns how many iterations the schedule visits.
func (e *Engine) Iterations() int {
	if e.Max < e.Start {
		return 0
	}
	return (e.Max-e.Start)/e.Stride + 1
}

// Run walks the schedule. Blocks until the last iteration or Stop.
func (e *Engine) Run() {
	e.Running = true
	slog.Debug("iteration loop started", "start", e.Start, "stride", e.Stride, "max", e.Max)

	for i := e.Start; e.Running && i <= e.Max; i += e.Stride {
		e.step(i)
	}

	e.Running = false
	slog.Debug("iteration loop stopped", "iteration", e.Iteration)
}

// Stop ends the loop after the current iteration.
func (e *Engine) Stop() {
	e.Running = false
}

func (e *Engine) step(i int) {
	e.Iteration = i

	if e.OnStep != nil {
		e.OnStep(i)
	}

	if e.DisplayStep > 0 && i%e.DisplayStep == 0 && e.OnDisplay != nil {
		e.OnDisplay(i, Sequence(i, e.DisplayStep))
	}
}
