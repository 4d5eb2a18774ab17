package shape

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/deformations/internal/grid"
)

// minSpeed keeps noisy speed fields strictly positive.
const minSpeed = 0.05

// SpeedField returns a coefficient field over d equal to 1 everywhere, or
// 1 + amplitude*n(x, y) with n multi-octave simplex noise in [-1, 1) when
// amplitude > 0. The same seed always yields the same field.
func SpeedField(d grid.Domain, amplitude float64, seed int64) *grid.Field {
	g := grid.NewField(d)
	if amplitude <= 0 {
		g.Fill(1)
		return g
	}

	noise := opensimplex.NewNormalized(seed)
	d.Points(func(idx int, p grid.Point) {
		n := octaveNoise(noise, float64(p.X), float64(p.Y), 3, 0.08, 0.5)
		g.SetAt(idx, max(minSpeed, 1+amplitude*(2*n-1)))
	})
	return g
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
