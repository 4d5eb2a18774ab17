// Package distance computes exact Euclidean distance transforms on grid
// images and the signed distance of a label partition.
//
// The squared transform is separable: a 1D lower-envelope pass over rows
// followed by one over columns (Felzenszwalb & Huttenlocher).
package distance

import (
	"math"

	"github.com/talgya/deformations/internal/grid"
)

// SquaredEDT returns, for every point, the squared Euclidean distance to the
// nearest point where feature is true. Points are infinitely far when there
// is no feature at all.
func SquaredEDT(d grid.Domain, feature func(idx int) bool) []float64 {
	w, h := d.Width(), d.Height()
	out := make([]float64, d.Size())
	for i := range out {
		if feature(i) {
			out[i] = 0
		} else {
			out[i] = math.Inf(1)
		}
	}

	n := max(w, h)
	f := make([]float64, n)
	res := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for y := 0; y < h; y++ {
		row := out[y*w : (y+1)*w]
		copy(f, row)
		envelope(f[:w], res[:w], v, z)
		copy(row, res[:w])
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = out[y*w+x]
		}
		envelope(f[:h], res[:h], v, z)
		for y := 0; y < h; y++ {
			out[y*w+x] = res[y]
		}
	}
	return out
}

// envelope computes res[q] = min_p (q-p)² + f[p] over the 1D sampled
// function f. v and z are scratch buffers of len(f) and len(f)+1.
func envelope(f, res []float64, v []int, z []float64) {
	n := len(f)
	k := -1
	for q := 0; q < n; q++ {
		if math.IsInf(f[q], 1) {
			continue
		}
		if k < 0 {
			k = 0
			v[0] = q
			z[0] = math.Inf(-1)
			z[1] = math.Inf(1)
			continue
		}
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			if k < 0 {
				break
			}
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		if k == 0 {
			z[0] = math.Inf(-1)
		} else {
			z[k] = s
		}
		z[k+1] = math.Inf(1)
	}

	if k < 0 {
		for q := range res {
			res[q] = math.Inf(1)
		}
		return
	}
	j := 0
	for q := 0; q < n; q++ {
		for z[j+1] < float64(q) {
			j++
		}
		dq := float64(q - v[j])
		res[q] = dq*dq + f[v[j]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}

// SignedDistance derives the starting implicit function of a label image.
// Foreground points receive +(d-0.5), d being the distance to the nearest
// background point; background points receive -(d-0.5), d being the distance
// to the nearest foreground point. The zero level set thus runs midway
// between the two regions. When a region is empty the other one takes
// ±diagonal of the domain.
func SignedDistance(labels *grid.Labels) *grid.Field {
	d := labels.Domain()
	fg := func(i int) bool { return labels.At(i) != 0 }
	bg := func(i int) bool { return labels.At(i) == 0 }

	toBackground := SquaredEDT(d, bg)
	toForeground := SquaredEDT(d, fg)

	diag := math.Hypot(float64(d.Width()), float64(d.Height()))
	field := grid.NewField(d)
	for i := range field.Values() {
		if fg(i) {
			field.SetAt(i, distanceOrCap(toBackground[i], diag)-0.5)
		} else {
			field.SetAt(i, -(distanceOrCap(toForeground[i], diag) - 0.5))
		}
	}
	return field
}

func distanceOrCap(sq, limit float64) float64 {
	if math.IsInf(sq, 1) {
		return limit + 0.5
	}
	return math.Sqrt(sq)
}

// SignedDistanceOf rebuilds the signed distance of the partition
// {f > threshold} of an implicit function.
func SignedDistanceOf(f *grid.Field, threshold float64) *grid.Field {
	labels := grid.NewLabels(f.Domain())
	for i, v := range f.Values() {
		if v > threshold {
			labels.SetAt(i, 1)
		}
	}
	return SignedDistance(labels)
}
