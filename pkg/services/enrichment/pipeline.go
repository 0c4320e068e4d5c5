package enrichment

import (
	"context"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/services/quality"
	"github.com/de-tools/carbon-atlas/pkg/services/runtime"
	"github.com/de-tools/carbon-atlas/pkg/services/timeseries"
)

// calculate derives every measurable value for one resource and classifies
// the outcome. Without any runtime there is nothing to attribute power,
// carbon or cost to, so all dependent fields stay nil.
func (e *Enricher) calculate(
	ctx context.Context,
	res domain.Resource,
	rec runtime.Reconstruction,
	carbonHistory []domain.Sample,
	result domain.EnrichedResult,
	now time.Time,
) domain.EnrichedResult {
	if len(rec.Intervals) == 0 {
		result.Confidence = domain.ConfidenceLow
		result.Quality = domain.QualityLimited
		return result
	}

	runtimeHours := rec.TotalHours()
	result.RuntimeHours = &runtimeHours

	gridStart, _ := runtime.Grid(now)

	cpuSamples := e.fetchCPUSamples(ctx, res, gridStart, now)
	cpuAligned := timeseries.AlignHourly(cpuSamples, gridStart)
	carbonAligned := timeseries.AlignHourly(carbonHistory, gridStart)

	rating, powerOK := e.fetchPowerRating(ctx, res.Type)
	price, priceOK := e.fetchPrice(ctx, res.Type, res.Region)

	in := emissions.Inputs{
		RuntimeFractions: runtime.Fractions(result.Slots),
		RuntimeHours:     runtimeHours,
		LookbackHours:    float64(e.settings.LookbackHours),
		ProjectionHours:  e.settings.ProjectionHours,
	}
	if powerOK {
		in.BaseWatts = &rating.AvgWatts
	}
	if priceOK {
		in.HourlyPrice = &price
	}
	if cpuAligned.HasData() {
		in.CPUHourly = cpuAligned.Values
		if avg, ok := timeseries.Mean(cpuSamples); ok {
			in.AvgCPU = &avg
		}
	}
	if carbonAligned.HasData() {
		in.CarbonHourly = carbonAligned.Values
		if avg, ok := timeseries.Mean(carbonHistory); ok {
			in.AvgCarbon = &avg
		}
	}

	totals := emissions.Calculate(in, result.Slots)
	result.CO2KgHourly = totals.CO2KgHourly
	result.CO2KgAverage = totals.CO2KgAverage
	result.CostHourly = totals.CostHourly
	result.CostAverage = totals.CostAverage
	result.Method = totals.Method

	signals := quality.Signals{
		Runtime: true,
		Power:   powerOK,
		CPU:     cpuAligned.HasData(),
		Pricing: priceOK,
		Carbon:  carbonAligned.HasData(),
	}
	result.DataSources = signals.Names()
	result.Confidence = quality.Confidence(signals)
	if rec.Synthetic {
		// An interval estimated from the launch time is a fallback, not a
		// measurement.
		result.Confidence = domain.ConfidenceLow
	}
	result.Quality = quality.Quality(signals)
	result.Completeness = completeness24h(cpuAligned, carbonAligned)

	return result
}

// completeness24h is the fraction of grid hours backed by real carbon and
// CPU samples. When only one of the two series has any data, its own
// completeness is reported; with no data at all it is zero.
func completeness24h(cpu, carbon timeseries.Aligned) float64 {
	switch {
	case cpu.HasData() && carbon.HasData():
		both := 0
		for h := range cpu.Measured {
			if cpu.Measured[h] && carbon.Measured[h] {
				both++
			}
		}
		return float64(both) / float64(domain.HoursPerGrid)
	case cpu.HasData():
		return cpu.Completeness()
	case carbon.HasData():
		return carbon.Completeness()
	default:
		return 0
	}
}

// aggregateTotals sums the dual totals across results, skipping nil
// contributions so absent data never masquerades as zero.
func aggregateTotals(results []domain.EnrichedResult) domain.ReportTotals {
	totals := domain.ReportTotals{}
	for _, r := range results {
		addOptional(&totals.CostHourly, r.CostHourly)
		addOptional(&totals.CO2Hourly, r.CO2KgHourly)
		addOptional(&totals.CostAverage, r.CostAverage)
		addOptional(&totals.CO2Average, r.CO2KgAverage)

		switch r.Method {
		case domain.MethodHourlyPrecise:
			totals.HourlyPreciseCount++
		case domain.MethodMonthlyAverage:
			totals.AverageOnlyCount++
		default:
			totals.UnmeasuredCount++
		}
	}
	return totals
}

func addOptional(total **float64, v *float64) {
	if v == nil {
		return
	}
	if *total == nil {
		sum := *v
		*total = &sum
		return
	}
	**total += *v
}
