// Package gateways declares the boundary interfaces the enrichment engine
// consumes. Implementations live in subpackages; the engine only ever sees
// these interfaces plus the two sentinel errors below.
package gateways

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// ErrUnavailable signals that an upstream had no data for the request. It is
// a valid absent state, not a failure: callers propagate nil through the
// pipeline instead of substituting a default.
var ErrUnavailable = errors.New("upstream data unavailable")

// ErrAuthentication signals a credential problem. It aborts the affected
// resource's enrichment but never the batch.
var ErrAuthentication = errors.New("upstream authentication failed")

type Inventory interface {
	ListResources(ctx context.Context, region string) ([]domain.Resource, error)
}

type Audit interface {
	LookupEvents(
		ctx context.Context,
		resourceID, region string,
		windowStart, windowEnd time.Time,
	) ([]domain.AuditEvent, error)
}

type Metrics interface {
	// FetchCPUHourly returns hourly-granularity CPU utilization samples
	// in percent (0-100).
	FetchCPUHourly(
		ctx context.Context,
		resourceID, region string,
		start, end time.Time,
	) ([]domain.Sample, error)
}

type Carbon interface {
	// CurrentIntensity returns the latest grid carbon intensity in g/kWh.
	CurrentIntensity(ctx context.Context, region string) (domain.Sample, error)
	// History returns the last `hours` hours of intensity samples.
	History(ctx context.Context, region string, hours int) ([]domain.Sample, error)
}

type PowerModel interface {
	PowerRating(ctx context.Context, resourceType string) (domain.PowerRating, error)
}

type Pricing interface {
	// HourlyPrice returns the on-demand price in USD per hour.
	HourlyPrice(ctx context.Context, resourceType, region string) (float64, error)
}

type Billing interface {
	// PeriodCost returns the billed cost total for the region and period.
	PeriodCost(ctx context.Context, region string, start, end time.Time) (float64, error)
}
