package emissions

import (
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Inputs carries everything the calculator may have for one resource. Nil
// pointers and nil slices mean the signal was unavailable; the calculator
// degrades instead of substituting defaults.
type Inputs struct {
	// BaseWatts is the hardware power rating; clamped to MinBasePowerWatts
	// when present.
	BaseWatts *float64

	// CPUHourly (percent, 0-100) and CarbonHourly (g/kWh) are 24-element
	// aligned series; nil when the signal had no data at all.
	CPUHourly    []float64
	CarbonHourly []float64

	// RuntimeFractions is the 24-element runtime grid and is always present.
	RuntimeFractions []float64

	// AvgCPU and AvgCarbon feed the period-average fallback path.
	AvgCPU    *float64
	AvgCarbon *float64

	// RuntimeHours is the total measured running time over the lookback.
	RuntimeHours float64

	// LookbackHours is the reconstruction window length; used to scale the
	// period-average path to the projection.
	LookbackHours float64

	// HourlyPrice is the on-demand price in currency per hour.
	HourlyPrice *float64

	// ProjectionHours is the period the totals are projected to, typically
	// HoursPerMonth.
	ProjectionHours float64
}

// Totals is the calculator's outcome. Hourly totals are nil unless the full
// hourly-precise path was available; average totals are nil only when even
// the fallback inputs were missing.
type Totals struct {
	CO2KgHourly  *float64
	CostHourly   *float64
	CO2KgAverage *float64
	CostAverage  *float64
	Method       domain.CalculationMethod
}

// EffectivePowerWatts applies the linear power model. It is monotonic
// non-decreasing in CPU utilization and bounded in
// [IdlePowerFraction*base, base].
func EffectivePowerWatts(baseWatts, cpuPercent float64) float64 {
	base := baseWatts
	if base < MinBasePowerWatts {
		base = MinBasePowerWatts
	}
	cpu := Clamp(cpuPercent, 0, 100)
	return base * (IdlePowerFraction + UtilizationPowerSlope*cpu/100)
}

// HourlyCO2Kg converts one hour's effective power, grid intensity and
// runtime fraction into kilograms of CO2.
func HourlyCO2Kg(powerWatts, intensityGPerKWh, runtimeFraction float64) float64 {
	powerKW := powerWatts / 1000
	return powerKW * intensityGPerKWh * runtimeFraction / 1000
}

// Calculate runs both calculation paths over the inputs and annotates the
// slot grid with every per-hour value that could be derived. slots must be
// the same 24-bucket grid RuntimeFractions was built from.
func Calculate(in Inputs, slots []domain.HourlySlot) Totals {
	totals := Totals{Method: domain.MethodNone}

	hourlyAvailable := in.BaseWatts != nil && in.CPUHourly != nil && in.CarbonHourly != nil
	annotateSlots(in, slots)

	if hourlyAvailable {
		var co2 float64
		for h, fraction := range in.RuntimeFractions {
			power := EffectivePowerWatts(*in.BaseWatts, in.CPUHourly[h])
			co2 += HourlyCO2Kg(power, in.CarbonHourly[h], fraction)
		}
		projected := RoundMassKg(co2 * in.ProjectionHours / float64(len(in.RuntimeFractions)))
		totals.CO2KgHourly = &projected
		totals.Method = domain.MethodHourlyPrecise
	}

	if in.HourlyPrice != nil {
		var hours float64
		for _, fraction := range in.RuntimeFractions {
			hours += fraction
		}
		price := *in.HourlyPrice
		if price < 0 {
			price = 0
		}
		cost := RoundMoney(price * hours * in.ProjectionHours / float64(len(in.RuntimeFractions)))
		totals.CostHourly = &cost
	}

	averageTotals(in, &totals)
	return totals
}

// averageTotals computes the period-average fallback path: one averaged CPU
// and intensity value applied to the total measured runtime, scaled to the
// projection period.
func averageTotals(in Inputs, totals *Totals) {
	if in.LookbackHours <= 0 || in.RuntimeHours <= 0 {
		return
	}
	projectedRuntime := in.RuntimeHours * in.ProjectionHours / in.LookbackHours

	if in.BaseWatts != nil && in.AvgCPU != nil && in.AvgCarbon != nil {
		power := EffectivePowerWatts(*in.BaseWatts, *in.AvgCPU)
		co2 := RoundMassKg(power / 1000 * *in.AvgCarbon * projectedRuntime / 1000)
		totals.CO2KgAverage = &co2
		if totals.Method == domain.MethodNone {
			totals.Method = domain.MethodMonthlyAverage
		}
	}

	if in.HourlyPrice != nil {
		cost := RoundMoney(*in.HourlyPrice * projectedRuntime)
		if cost < 0 {
			cost = 0
		}
		totals.CostAverage = &cost
	}
}

// annotateSlots fills the per-hour slot fields for every signal that was
// actually available. Absent signals stay nil on the slot.
func annotateSlots(in Inputs, slots []domain.HourlySlot) {
	for h := range slots {
		if in.CPUHourly != nil {
			cpu := Clamp(in.CPUHourly[h], 0, 100)
			slots[h].CPUUtilization = &cpu
		}
		if in.CarbonHourly != nil {
			carbon := in.CarbonHourly[h]
			slots[h].CarbonIntensity = &carbon
		}
		if in.BaseWatts != nil && in.CPUHourly != nil {
			power := RoundPower(EffectivePowerWatts(*in.BaseWatts, in.CPUHourly[h]))
			slots[h].PowerWatts = &power

			if in.CarbonHourly != nil {
				co2 := RoundMassKg(HourlyCO2Kg(
					EffectivePowerWatts(*in.BaseWatts, in.CPUHourly[h]),
					in.CarbonHourly[h],
					slots[h].RuntimeFraction,
				))
				slots[h].CO2Kg = &co2
			}
		}
		if in.HourlyPrice != nil {
			cost := RoundMoney(*in.HourlyPrice * slots[h].RuntimeFraction)
			if cost < 0 {
				cost = 0
			}
			slots[h].Cost = &cost
		}
	}
}
