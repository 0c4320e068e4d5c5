package domain

import "time"

// HoursPerGrid is the number of hourly buckets the engine aligns data onto.
const HoursPerGrid = 24

// HourlySlot is one bucket of the 24-hour grid. RuntimeFraction is always in
// [0,1]; every other field is nil when the backing signal was unavailable —
// nil and zero are deliberately distinct.
type HourlySlot struct {
	HourStart       time.Time
	RuntimeFraction float64
	CarbonIntensity *float64
	CPUUtilization  *float64
	PowerWatts      *float64
	CO2Kg           *float64
	Cost            *float64
}
