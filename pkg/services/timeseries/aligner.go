// Package timeseries aligns sparse, irregularly-timestamped samples onto the
// engine's fixed 24-hour grid.
package timeseries

import (
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Aligned is a 24-element hourly series. Measured marks the hours backed by
// a real sample; gap hours carry the mean of all available samples, an
// explicit approximation that never counts toward completeness. An all-false
// Measured with zero SampleCount means "no data", not "data is zero".
type Aligned struct {
	Values      []float64
	Measured    []bool
	SampleCount int
}

// Completeness is the fraction of grid hours backed by a real sample.
func (a Aligned) Completeness() float64 {
	return float64(a.SampleCount) / float64(domain.HoursPerGrid)
}

// HasData reports whether any real sample reached the grid.
func (a Aligned) HasData() bool {
	return a.SampleCount > 0
}

// AlignHourly normalizes each sample to its containing hour and places it on
// the 24-hour grid starting at gridStart. Hours with several samples use
// their mean. Empty input yields an all-zero series with zero completeness.
func AlignHourly(samples []domain.Sample, gridStart time.Time) Aligned {
	aligned := Aligned{
		Values:   make([]float64, domain.HoursPerGrid),
		Measured: make([]bool, domain.HoursPerGrid),
	}
	if len(samples) == 0 {
		return aligned
	}

	sums := make([]float64, domain.HoursPerGrid)
	counts := make([]int, domain.HoursPerGrid)
	for _, s := range samples {
		hour := s.Timestamp.Truncate(time.Hour)
		idx := int(hour.Sub(gridStart) / time.Hour)
		if idx < 0 || idx >= domain.HoursPerGrid {
			continue
		}
		sums[idx] += s.Value
		counts[idx]++
	}

	fallback, _ := Mean(samples)

	for i := range aligned.Values {
		if counts[i] > 0 {
			aligned.Values[i] = sums[i] / float64(counts[i])
			aligned.Measured[i] = true
			aligned.SampleCount++
		} else {
			aligned.Values[i] = fallback
		}
	}
	return aligned
}

// Mean returns the arithmetic mean of all samples, and false when the input
// is empty.
func Mean(samples []domain.Sample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range samples {
		sum += s.Value
	}
	return sum / float64(len(samples)), true
}
