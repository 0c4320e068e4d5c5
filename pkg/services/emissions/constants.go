// Package emissions derives effective power draw, CO2 and cost from runtime,
// utilization and grid-intensity series, in hourly-precise and period-average
// modes.
package emissions

const (
	// IdlePowerFraction is the share of the base rating a host draws at 0%
	// CPU. The linear model is literature-defensible for server hardware.
	IdlePowerFraction = 0.3

	// UtilizationPowerSlope is the share of the base rating scaled by CPU
	// utilization; power at 100% CPU equals the base rating.
	UtilizationPowerSlope = 0.7

	// MinBasePowerWatts is the floor a base rating is clamped to before any
	// derivation.
	MinBasePowerWatts = 0.1

	// HoursPerMonth is the standard month length for projections.
	HoursPerMonth = 730.0
)
