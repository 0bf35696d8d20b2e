package layout

import "sort"

// ReadingOrder is the built-in reading-order resolver. It implements an
// XY-cut: the boxes are split along projection gaps on the axis
// perpendicular to the reading direction, and each slice is then ordered
// along the reading direction itself.
type ReadingOrder struct {
	// MinGap is the smallest projection gap, in pixels, that separates two
	// slices. Zero means 1.
	MinGap float64
}

// Order returns a permutation of indices putting boxes into reading order.
func (r ReadingOrder) Order(boxes []BBox, dir Direction) []int {
	minGap := r.MinGap
	if minGap <= 0 {
		minGap = 1
	}
	idx := make([]int, len(boxes))
	for i := range idx {
		idx[i] = i
	}
	return xyCut(boxes, idx, dir, minGap)
}

// xyCut splits idx into slices separated by projection gaps and orders each
// slice along the reading direction.
func xyCut(boxes []BBox, idx []int, dir Direction, minGap float64) []int {
	if len(idx) <= 1 {
		return idx
	}

	slices := splitByGaps(boxes, idx, dir, minGap)
	out := make([]int, 0, len(idx))
	for _, slice := range slices {
		sortInline(boxes, slice, dir)
		out = append(out, slice...)
	}
	return out
}

// splitByGaps groups idx into slices whose projections on the cut axis
// (y for horizontal reading, x for vertical reading) are separated by at
// least minGap. Slices come back in ascending projection order.
func splitByGaps(boxes []BBox, idx []int, dir Direction, minGap float64) [][]int {
	lo := func(i int) float64 { return boxes[i].Y1 }
	hi := func(i int) float64 { return boxes[i].Y2 }
	if dir == Vertical {
		lo = func(i int) float64 { return boxes[i].X1 }
		hi = func(i int) float64 { return boxes[i].X2 }
	}

	sorted := append([]int(nil), idx...)
	sort.SliceStable(sorted, func(a, b int) bool { return lo(sorted[a]) < lo(sorted[b]) })

	var slices [][]int
	var cur []int
	curEnd := 0.0
	for _, i := range sorted {
		if len(cur) > 0 && lo(i)-curEnd >= minGap {
			slices = append(slices, cur)
			cur = nil
		}
		cur = append(cur, i)
		if hi(i) > curEnd {
			curEnd = hi(i)
		}
	}
	if len(cur) > 0 {
		slices = append(slices, cur)
	}
	return slices
}

// sortInline orders one slice along the reading direction: left to right for
// horizontal text, top to bottom for vertical text. Ties fall back to the
// other axis so the order stays deterministic.
func sortInline(boxes []BBox, idx []int, dir Direction) {
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if dir == Vertical {
			if boxes[i].Y1 != boxes[j].Y1 {
				return boxes[i].Y1 < boxes[j].Y1
			}
			return boxes[i].X1 < boxes[j].X1
		}
		if boxes[i].X1 != boxes[j].X1 {
			return boxes[i].X1 < boxes[j].X1
		}
		return boxes[i].Y1 < boxes[j].Y1
	})
}
