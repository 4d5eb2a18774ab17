package evolve

import (
	"errors"
	"fmt"

	"github.com/talgya/deformations/internal/grid"
)

// ErrUnknownKind reports an evolver name New does not know.
var ErrUnknownKind = errors.New("unknown evolver")

// Params carries everything a variant may need. Fields a variant does not
// use are ignored.
type Params struct {
	A, B, G     *grid.Field // LevelSet coefficients; G is shared with LocalLevelSet
	K           float64     // balloon force
	Epsilon     float64
	ConstVolume bool
	BandWidth   float64
	Predicate   TopologicalPredicate
}

// New builds the evolver named kind: "levelSet", "phaseField" or
// "localLevelSet".
func New(kind string, p Params) (Evolver, error) {
	switch kind {
	case "levelSet":
		return NewLevelSet(p.A, p.B, p.G, p.K), nil
	case "phaseField":
		return NewPhaseField(p.Epsilon, p.ConstVolume), nil
	case "localLevelSet":
		pred := p.Predicate
		if pred == nil {
			pred = SimplePoint{}
		}
		return NewLocalLevelSet(p.G, p.BandWidth, pred), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}
