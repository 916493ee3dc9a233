package wheel

import (
	"fmt"
	"math"
)

// FullTurn is one complete revolution in degrees.
const FullTurn = 360.0

// Segment represents a single weighted slice of the wheel.
type Segment struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Uniform returns equally weighted segments for the given labels.
func Uniform(labels ...string) []Segment {
	segments := make([]Segment, len(labels))
	for i, label := range labels {
		segments[i] = Segment{Label: label, Weight: 1}
	}
	return segments
}

// Table is a validated outcome table. Segment order is fixed and angular
// ranges are laid out consecutively from 0 degrees in that order.
type Table struct {
	segments   []Segment
	cumulative []float64
	total      float64
}

// NewTable validates the segments and builds an immutable table.
func NewTable(segments []Segment) (*Table, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrConfiguration)
	}

	t := &Table{
		segments:   make([]Segment, len(segments)),
		cumulative: make([]float64, len(segments)),
	}
	copy(t.segments, segments)

	for i, s := range segments {
		// NaN fails the comparison as well
		if !(s.Weight > 0) || math.IsInf(s.Weight, 1) {
			return nil, fmt.Errorf("%w: segment %d (%q) has weight %v", ErrConfiguration, i, s.Label, s.Weight)
		}
		t.total += s.Weight
		t.cumulative[i] = t.total
	}

	if math.IsInf(t.total, 1) {
		return nil, fmt.Errorf("%w: total weight overflows", ErrConfiguration)
	}

	return t, nil
}

// Len returns the number of segments.
func (t *Table) Len() int {
	return len(t.segments)
}

// TotalWeight returns the sum of all segment weights.
func (t *Table) TotalWeight() float64 {
	return t.total
}

// Segment returns the segment at index i.
func (t *Table) Segment(i int) (Segment, bool) {
	if i < 0 || i >= len(t.segments) {
		return Segment{}, false
	}
	return t.segments[i], true
}

// Segments returns a copy of the segment list.
func (t *Table) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// RangeOf returns the half-open angular range [start, end) of segment i in degrees.
func (t *Table) RangeOf(i int) (start, end float64, err error) {
	if i < 0 || i >= len(t.segments) {
		return 0, 0, fmt.Errorf("%w: segment index %d out of range [0,%d)", ErrConfiguration, i, len(t.segments))
	}

	if i > 0 {
		start = t.cumulative[i-1] / t.total * FullTurn
	}
	end = FullTurn
	if i < len(t.segments)-1 {
		end = t.cumulative[i] / t.total * FullTurn
	}
	return start, end, nil
}

// Span returns the angular width of segment i in degrees.
func (t *Table) Span(i int) float64 {
	start, end, err := t.RangeOf(i)
	if err != nil {
		return 0
	}
	return end - start
}

// Probability returns the selection probability of segment i.
func (t *Table) Probability(i int) float64 {
	s, ok := t.Segment(i)
	if !ok {
		return 0
	}
	return s.Weight / t.total
}
