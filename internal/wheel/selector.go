package wheel

import "fmt"

// Select maps a uniform draw in [0,1) to a segment index by walking the
// cumulative weights. A draw that lands exactly on a boundary belongs to the
// following segment.
func Select(t *Table, draw float64) (int, error) {
	if !(draw >= 0 && draw < 1) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidDraw, draw)
	}

	scaled := draw * t.total
	for i, cum := range t.cumulative {
		if cum > scaled {
			return i, nil
		}
	}

	// rounding in the running sum can leave the last boundary a hair below total
	return len(t.cumulative) - 1, nil
}
