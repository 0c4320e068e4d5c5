package runtime

import (
	"testing"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario A: Start@10:15, Stop@12:45 inside a whole-hour window.
func TestAllocateHourly_PartialBoundaryHours(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC)
	day := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	intervals := []domain.Interval{{
		Start: day.Add(10*time.Hour + 15*time.Minute),
		End:   day.Add(12*time.Hour + 45*time.Minute),
	}}

	slots := AllocateHourly(intervals, now)
	require.Len(t, slots, 24)

	byHour := make(map[int]float64)
	for _, s := range slots {
		byHour[s.HourStart.Hour()] = s.RuntimeFraction
	}

	assert.InDelta(t, 0.75, byHour[10], 1e-9)
	assert.InDelta(t, 1.0, byHour[11], 1e-9)
	assert.InDelta(t, 0.75, byHour[12], 1e-9)
	for h, f := range byHour {
		if h == 10 || h == 11 || h == 12 {
			continue
		}
		assert.Zero(t, f, "hour %d should be idle", h)
	}
}

func TestAllocateHourly_GridShape(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 23, 11, 0, time.UTC)
	slots := AllocateHourly(nil, now)
	require.Len(t, slots, 24)

	// Grid ends on the whole hour before now and is contiguous.
	gridStart, gridEnd := Grid(now)
	assert.Equal(t, time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC), gridEnd)
	assert.Equal(t, gridStart, slots[0].HourStart)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].HourStart.Add(time.Hour), slots[i].HourStart)
	}
}

func TestAllocateHourly_FractionsBounded(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC)

	// Overlapping intervals must still never push a fraction above 1.
	intervals := []domain.Interval{
		{Start: now.Add(-3 * time.Hour), End: now},
		{Start: now.Add(-2 * time.Hour), End: now.Add(-1 * time.Hour)},
	}

	slots := AllocateHourly(intervals, now)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.RuntimeFraction, 0.0)
		assert.LessOrEqual(t, s.RuntimeFraction, 1.0)
	}
}

// The summed fractions must equal the total overlap seconds between the
// intervals and the grid window.
func TestAllocateHourly_ConservesOverlap(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC)
	gridStart, gridEnd := Grid(now)

	intervals := []domain.Interval{
		{Start: now.Add(-30 * time.Hour), End: now.Add(-20 * time.Hour)},
		{Start: now.Add(-10 * time.Hour), End: now.Add(-9*time.Hour - 30*time.Minute)},
		{Start: now.Add(-2*time.Hour - 20*time.Minute), End: now},
	}

	slots := AllocateHourly(intervals, now)

	var fractionSeconds float64
	for _, s := range slots {
		fractionSeconds += s.RuntimeFraction * 3600
	}

	var overlapSeconds float64
	for _, iv := range intervals {
		overlapSeconds += iv.Overlap(gridStart, gridEnd).Seconds()
	}

	assert.InDelta(t, overlapSeconds, fractionSeconds, 1e-6)
}

// Scenario D continued: a synthesized [now-5h, now] interval fills the last
// five buckets and leaves the rest idle.
func TestAllocateHourly_SynthesizedLaunchInterval(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC)

	intervals := []domain.Interval{{Start: now.Add(-5 * time.Hour), End: now}}
	slots := AllocateHourly(intervals, now)

	for i, s := range slots {
		if i >= 19 {
			assert.InDelta(t, 1.0, s.RuntimeFraction, 1e-9, "bucket %d", i)
		} else {
			assert.Zero(t, s.RuntimeFraction, "bucket %d", i)
		}
	}
}

// A long-lived resource whose only interval opened before the grid still
// shows full runtime from the grid boundary on.
func TestAllocateHourly_AlwaysOnResource(t *testing.T) {
	now := time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC)

	intervals := []domain.Interval{{Start: now.Add(-14 * 24 * time.Hour), End: now}}
	slots := AllocateHourly(intervals, now)

	for i, s := range slots {
		assert.InDelta(t, 1.0, s.RuntimeFraction, 1e-9, "bucket %d", i)
	}
}
