package engine

import (
	"github.com/talgya/deformations/internal/grid"
	"github.com/talgya/deformations/internal/render"
)

// Sample is the diagnostic recorded after an iteration. Iteration 0 is the
// starting interface.
type Sample struct {
	Iteration int     `json:"iteration"`
	Time      float64 `json:"time"`   // accumulated evolution time
	Area      int     `json:"area"`   // points strictly above the threshold
	Length    float64 `json:"length"` // iso-contour length
}

// Measure computes the diagnostic of f.
func Measure(f *grid.Field, threshold float64, iteration int, t float64) Sample {
	return Sample{
		Iteration: iteration,
		Time:      t,
		Area:      f.CountAbove(threshold),
		Length:    render.Length(render.Contours(f, threshold)),
	}
}
