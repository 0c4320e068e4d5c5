package runtime

import (
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Grid returns the 24-hour hourly grid bounds ending at the last whole hour
// before (or at) now.
func Grid(now time.Time) (start, end time.Time) {
	end = now.Truncate(time.Hour)
	start = end.Add(-domain.HoursPerGrid * time.Hour)
	return start, end
}

// AllocateHourly maps intervals onto the 24 whole-hour buckets ending at
// now.Truncate(time.Hour). Each slot's RuntimeFraction is the summed overlap
// between the intervals and the bucket, divided by one hour and clamped to
// [0,1]. Intervals opened before the grid (long-lived always-on resources)
// contribute from the grid boundary on, so such resources are not falsely
// reported as near-zero runtime.
func AllocateHourly(intervals []domain.Interval, now time.Time) []domain.HourlySlot {
	gridStart, _ := Grid(now)

	slots := make([]domain.HourlySlot, domain.HoursPerGrid)
	for h := range slots {
		bucketStart := gridStart.Add(time.Duration(h) * time.Hour)
		bucketEnd := bucketStart.Add(time.Hour)

		var overlap time.Duration
		for _, iv := range intervals {
			overlap += iv.Overlap(bucketStart, bucketEnd)
		}

		fraction := overlap.Seconds() / time.Hour.Seconds()
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}

		slots[h] = domain.HourlySlot{
			HourStart:       bucketStart,
			RuntimeFraction: fraction,
		}
	}
	return slots
}

// Fractions extracts the runtime fractions from a slot grid.
func Fractions(slots []domain.HourlySlot) []float64 {
	out := make([]float64, len(slots))
	for i, s := range slots {
		out[i] = s.RuntimeFraction
	}
	return out
}
