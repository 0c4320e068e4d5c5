package domain

import "time"

type CalculationMethod string

const (
	MethodHourlyPrecise  CalculationMethod = "hourly_precise"
	MethodMonthlyAverage CalculationMethod = "monthly_average"
	MethodNone           CalculationMethod = "none"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

type DataQuality string

const (
	QualityMeasured DataQuality = "measured"
	QualityPartial  DataQuality = "partial"
	QualityLimited  DataQuality = "limited"
)

// Signal names tracked per result so consumers can tell which upstream
// sources actually contributed.
const (
	SignalRuntime = "runtime"
	SignalPower   = "power"
	SignalCPU     = "cpu"
	SignalPricing = "pricing"
	SignalCarbon  = "carbon"
)

// EnrichedResult is the immutable outcome of one resource's enrichment.
// Pointer fields are nil whenever the underlying value could not be measured;
// a nil is never to be read as zero.
type EnrichedResult struct {
	Resource Resource

	Intervals []Interval
	Slots     []HourlySlot

	// RuntimeHours is the measured running time over the lookback window.
	RuntimeHours *float64

	// Monthly projections, one per calculation path.
	CO2KgHourly  *float64
	CO2KgAverage *float64
	CostHourly   *float64
	CostAverage  *float64

	Method       CalculationMethod
	Confidence   ConfidenceLevel
	Quality      DataQuality
	DataSources  []string
	Completeness float64

	// SyntheticRuntime marks results whose only interval was synthesized
	// from the launch time because no audit events existed.
	SyntheticRuntime bool

	// FailureReason is set when enrichment aborted for this resource
	// (authentication or malformed input); all measured fields stay nil.
	FailureReason *string
}

// ReportTotals aggregates over a result set, skipping nil contributions.
type ReportTotals struct {
	CostHourly  *float64
	CO2Hourly   *float64
	CostAverage *float64
	CO2Average  *float64

	HourlyPreciseCount int
	AverageOnlyCount   int
	UnmeasuredCount    int

	// BilledCost is the billing API's cost total for the period, when the
	// billing gateway had data.
	BilledCost *float64
}

// EnrichmentReport is the full product of one enrichment pass.
type EnrichmentReport struct {
	RunID       string
	Region      string
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time

	// CurrentIntensity is the latest grid carbon intensity for the region
	// in g/kWh, when the carbon gateway had data.
	CurrentIntensity *float64

	Results []EnrichedResult
	Totals  ReportTotals
}
