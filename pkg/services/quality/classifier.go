// Package quality classifies how much of a result is backed by real data.
// It is pure and deterministic: the classification depends only on which
// signals contributed.
package quality

import (
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Signals records which upstream fetches actually produced data for one
// resource.
type Signals struct {
	Runtime bool
	Power   bool
	CPU     bool
	Pricing bool
	Carbon  bool
}

// Names returns the contributing signal names in a fixed order.
func (s Signals) Names() []string {
	var names []string
	if s.Runtime {
		names = append(names, domain.SignalRuntime)
	}
	if s.Power {
		names = append(names, domain.SignalPower)
	}
	if s.CPU {
		names = append(names, domain.SignalCPU)
	}
	if s.Pricing {
		names = append(names, domain.SignalPricing)
	}
	if s.Carbon {
		names = append(names, domain.SignalCarbon)
	}
	return names
}

func (s Signals) count() int {
	n := 0
	for _, present := range []bool{s.Runtime, s.Power, s.CPU, s.Pricing, s.Carbon} {
		if present {
			n++
		}
	}
	return n
}

// Confidence buckets the number of independent contributing signals.
func Confidence(s Signals) domain.ConfidenceLevel {
	switch n := s.count(); {
	case n >= 4:
		return domain.ConfidenceHigh
	case n == 3:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// Quality reports how complete the four core signals (runtime, cpu, power,
// cost) are: measured when all four contributed, limited when none did,
// partial in between.
func Quality(s Signals) domain.DataQuality {
	core := 0
	for _, present := range []bool{s.Runtime, s.CPU, s.Power, s.Pricing} {
		if present {
			core++
		}
	}
	switch core {
	case 4:
		return domain.QualityMeasured
	case 0:
		return domain.QualityLimited
	default:
		return domain.QualityPartial
	}
}
