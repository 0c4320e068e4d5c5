package api

import "time"

type Resource struct {
	Id         string            `json:"id"`
	Type       string            `json:"type"`
	State      string            `json:"state"`
	Region     string            `json:"region"`
	LaunchTime *time.Time        `json:"launch_time,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
}

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type HourlySlot struct {
	HourStart       time.Time `json:"hour_start"`
	RuntimeFraction float64   `json:"runtime_fraction"`
	CarbonIntensity *float64  `json:"carbon_intensity_g_per_kwh,omitempty"`
	CPUUtilization  *float64  `json:"cpu_utilization_pct,omitempty"`
	PowerWatts      *float64  `json:"power_watts,omitempty"`
	CO2Kg           *float64  `json:"co2_kg,omitempty"`
	Cost            *float64  `json:"cost_usd,omitempty"`
}

type ResourceResult struct {
	Resource         Resource     `json:"resource"`
	Intervals        []Interval   `json:"intervals"`
	Slots            []HourlySlot `json:"hourly,omitempty"`
	RuntimeHours     *float64     `json:"runtime_hours,omitempty"`
	CO2KgHourly      *float64     `json:"co2_kg_hourly,omitempty"`
	CO2KgAverage     *float64     `json:"co2_kg_average,omitempty"`
	CostHourly       *float64     `json:"cost_usd_hourly,omitempty"`
	CostAverage      *float64     `json:"cost_usd_average,omitempty"`
	Method           string       `json:"method"`
	Confidence       string       `json:"confidence"`
	Quality          string       `json:"quality"`
	DataSources      []string     `json:"data_sources,omitempty"`
	Completeness     float64      `json:"completeness"`
	SyntheticRuntime bool         `json:"synthetic_runtime,omitempty"`
	FailureReason    *string      `json:"failure_reason,omitempty"`
}

type ReportTotals struct {
	CostHourly         *float64 `json:"cost_usd_hourly,omitempty"`
	CO2Hourly          *float64 `json:"co2_kg_hourly,omitempty"`
	CostAverage        *float64 `json:"cost_usd_average,omitempty"`
	CO2Average         *float64 `json:"co2_kg_average,omitempty"`
	BilledCost         *float64 `json:"billed_cost_usd,omitempty"`
	HourlyPreciseCount int      `json:"hourly_precise_count"`
	AverageOnlyCount   int      `json:"average_only_count"`
	UnmeasuredCount    int      `json:"unmeasured_count"`
}

type Report struct {
	RunId            string           `json:"run_id"`
	Region           string           `json:"region"`
	GeneratedAt      time.Time        `json:"generated_at"`
	WindowStart      time.Time        `json:"window_start"`
	WindowEnd        time.Time        `json:"window_end"`
	CurrentIntensity *float64         `json:"current_intensity_g_per_kwh,omitempty"`
	Results          []ResourceResult `json:"results"`
	Totals           ReportTotals     `json:"totals"`
}
