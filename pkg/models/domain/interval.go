package domain

import "time"

// Interval is one contiguous running session, end >= start. Reconstruction
// emits them non-overlapping and in chronological order; they are built fresh
// per call and never persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlap returns the overlap between the interval and [start, end),
// clamped to zero.
func (i Interval) Overlap(start, end time.Time) time.Duration {
	s := i.Start
	if start.After(s) {
		s = start
	}
	e := i.End
	if end.Before(e) {
		e = end
	}
	if !e.After(s) {
		return 0
	}
	return e.Sub(s)
}

// TotalDuration sums the durations of all intervals.
func TotalDuration(intervals []Interval) time.Duration {
	var total time.Duration
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}
