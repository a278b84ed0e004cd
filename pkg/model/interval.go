package model

import "fmt"

// InvalidRangeError reports reversed interval bounds. A hit carrying such
// bounds is skippable; it never aborts the batch.
type InvalidRangeError struct {
	Lo, Hi int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: lo %d > hi %d", e.Lo, e.Hi)
}

// Run is one maximal contiguous stretch of positions, closed on both ends.
type Run struct {
	Lo, Hi int
}

// IntervalSet is a growing set of integer positions, stored as disjoint runs
// in ascending order. Adjacent runs are always coalesced, so the stored form
// is minimal.
type IntervalSet struct {
	runs []Run
}

func NewIntervalSet() *IntervalSet {
	return &IntervalSet{}
}

// AddRange merges [lo, hi] into the set, coalescing with any run it overlaps
// or touches.
func (s *IntervalSet) AddRange(lo, hi int) error {
	if lo > hi {
		return &InvalidRangeError{Lo: lo, Hi: hi}
	}

	merged := Run{Lo: lo, Hi: hi}
	out := make([]Run, 0, len(s.runs)+1)

	i := 0
	for ; i < len(s.runs) && s.runs[i].Hi < lo-1; i++ {
		out = append(out, s.runs[i])
	}
	// Every run starting at or before hi+1 touches the new range.
	for ; i < len(s.runs) && s.runs[i].Lo <= hi+1; i++ {
		if s.runs[i].Lo < merged.Lo {
			merged.Lo = s.runs[i].Lo
		}
		if s.runs[i].Hi > merged.Hi {
			merged.Hi = s.runs[i].Hi
		}
	}
	out = append(out, merged)
	out = append(out, s.runs[i:]...)

	s.runs = out
	return nil
}

func (s *IntervalSet) IsEmpty() bool {
	return len(s.runs) == 0
}

// Intersect returns the positions present in both sets.
func (s *IntervalSet) Intersect(other *IntervalSet) *IntervalSet {
	res := NewIntervalSet()

	i, j := 0, 0
	for i < len(s.runs) && j < len(other.runs) {
		a, b := s.runs[i], other.runs[j]
		lo := max(a.Lo, b.Lo)
		hi := min(a.Hi, b.Hi)
		if lo <= hi {
			res.runs = append(res.runs, Run{Lo: lo, Hi: hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return res
}

// Runlist returns the maximal contiguous runs, ascending by Lo.
func (s *IntervalSet) Runlist() []Run {
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out
}
