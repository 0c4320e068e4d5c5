package adapters

import (
	"maps"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

func MapEnrichmentReportDomainToApi(report domain.EnrichmentReport) api.Report {
	apiReport := api.Report{
		RunId:            report.RunID,
		Region:           report.Region,
		GeneratedAt:      report.GeneratedAt,
		WindowStart:      report.WindowStart,
		WindowEnd:        report.WindowEnd,
		CurrentIntensity: report.CurrentIntensity,
		Results:          []api.ResourceResult{},
		Totals:           MapReportTotalsDomainToApi(report.Totals),
	}
	for _, result := range report.Results {
		apiReport.Results = append(apiReport.Results, MapEnrichedResultDomainToApi(result))
	}
	return apiReport
}

func MapEnrichedResultDomainToApi(result domain.EnrichedResult) api.ResourceResult {
	apiResult := api.ResourceResult{
		Resource:         MapResourceDomainToApi(result.Resource),
		Intervals:        []api.Interval{},
		RuntimeHours:     result.RuntimeHours,
		CO2KgHourly:      result.CO2KgHourly,
		CO2KgAverage:     result.CO2KgAverage,
		CostHourly:       result.CostHourly,
		CostAverage:      result.CostAverage,
		Method:           string(result.Method),
		Confidence:       string(result.Confidence),
		Quality:          string(result.Quality),
		DataSources:      result.DataSources,
		Completeness:     result.Completeness,
		SyntheticRuntime: result.SyntheticRuntime,
		FailureReason:    result.FailureReason,
	}
	for _, interval := range result.Intervals {
		apiResult.Intervals = append(apiResult.Intervals, api.Interval{
			Start: interval.Start,
			End:   interval.End,
		})
	}
	for _, slot := range result.Slots {
		apiResult.Slots = append(apiResult.Slots, MapHourlySlotDomainToApi(slot))
	}
	return apiResult
}

func MapHourlySlotDomainToApi(slot domain.HourlySlot) api.HourlySlot {
	return api.HourlySlot{
		HourStart:       slot.HourStart,
		RuntimeFraction: slot.RuntimeFraction,
		CarbonIntensity: slot.CarbonIntensity,
		CPUUtilization:  slot.CPUUtilization,
		PowerWatts:      slot.PowerWatts,
		CO2Kg:           slot.CO2Kg,
		Cost:            slot.Cost,
	}
}

func MapResourceDomainToApi(res domain.Resource) api.Resource {
	return api.Resource{
		Id:         res.ID,
		Type:       res.Type,
		State:      string(res.State),
		Region:     res.Region,
		LaunchTime: res.LaunchTime,
		Tags:       maps.Clone(res.Tags),
	}
}

func MapReportTotalsDomainToApi(totals domain.ReportTotals) api.ReportTotals {
	return api.ReportTotals{
		CostHourly:         totals.CostHourly,
		CO2Hourly:          totals.CO2Hourly,
		CostAverage:        totals.CostAverage,
		CO2Average:         totals.CO2Average,
		BilledCost:         totals.BilledCost,
		HourlyPreciseCount: totals.HourlyPreciseCount,
		AverageOnlyCount:   totals.AverageOnlyCount,
		UnmeasuredCount:    totals.UnmeasuredCount,
	}
}
