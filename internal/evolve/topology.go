package evolve

import "github.com/talgya/deformations/internal/grid"

// TopologicalPredicate decides whether the point p may switch sides of the
// partition given by inside.
type TopologicalPredicate interface {
	Allowed(p grid.Point, inside func(grid.Point) bool) bool
}

// SimplePoint allows a switch only at simple points of the (8,4) digital
// topology: foreground 8-connected, background 4-connected. Switching a
// simple point changes neither the number of components nor of holes.
type SimplePoint struct{}

// Allowed implements TopologicalPredicate.
func (SimplePoint) Allowed(p grid.Point, inside func(grid.Point) bool) bool {
	return simple84[neighborhood(p, inside)]
}

// FreeTopology allows every switch.
type FreeTopology struct{}

// Allowed implements TopologicalPredicate.
func (FreeTopology) Allowed(grid.Point, func(grid.Point) bool) bool { return true }

// neighborhood packs the inside flags of the 8 neighbors of p, in
// grid.Neighbors8 order, into a byte.
func neighborhood(p grid.Point, inside func(grid.Point) bool) uint8 {
	var mask uint8
	for i, off := range grid.Neighbors8 {
		if inside(p.Add(off)) {
			mask |= 1 << i
		}
	}
	return mask
}

// simple84[mask] is true when a point with that neighborhood is simple.
var simple84 = buildSimpleTable()

func buildSimpleTable() [256]bool {
	var table [256]bool
	for m := 0; m < 256; m++ {
		mask := uint8(m)
		t8 := components(mask, adjacent8, false)
		t4 := components(^mask, adjacent4, true)
		table[m] = t8 == 1 && t4 == 1
	}
	return table
}

func adjacent8(a, b grid.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func adjacent4(a, b grid.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy == 1
}

// components counts the connected components of the neighbors selected by
// mask. With needFourNeighbor, only components containing a 4-neighbor of
// the center are counted.
func components(mask uint8, adjacent func(a, b grid.Point) bool, needFourNeighbor bool) int {
	var seen uint8
	count := 0
	for start := 0; start < 8; start++ {
		if mask&(1<<start) == 0 || seen&(1<<start) != 0 {
			continue
		}
		stack := []int{start}
		seen |= 1 << start
		touchesFour := false
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if i%2 == 0 {
				touchesFour = true
			}
			for j := 0; j < 8; j++ {
				if mask&(1<<j) == 0 || seen&(1<<j) != 0 {
					continue
				}
				if adjacent(grid.Neighbors8[i], grid.Neighbors8[j]) {
					seen |= 1 << j
					stack = append(stack, j)
				}
			}
		}
		if !needFourNeighbor || touchesFour {
			count++
		}
	}
	return count
}
