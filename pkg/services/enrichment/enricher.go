// Package enrichment runs the full reconstruct-allocate-align-calculate
// pipeline over an inventory snapshot and produces one immutable report per
// pass.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/services/runtime"
	"github.com/de-tools/carbon-atlas/pkg/store/cache"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Dependencies are the engine's collaborators, injected so tests can swap in
// fakes and fixed clocks. Billing is optional; everything else is required.
type Dependencies struct {
	Inventory gateways.Inventory
	Audit     gateways.Audit
	Metrics   gateways.Metrics
	Carbon    gateways.Carbon
	Power     gateways.PowerModel
	Pricing   gateways.Pricing
	Billing   gateways.Billing
	Cache     cache.Repository
	Clock     cache.Clock
}

// Settings are the tunables of one enrichment pass.
type Settings struct {
	// LookbackHours is the reconstruction window length.
	LookbackHours int
	// Concurrency caps the worker pool so external APIs are not hammered.
	Concurrency int
	// ProjectionHours is the period the dual totals are projected to.
	ProjectionHours float64
}

func DefaultSettings() Settings {
	return Settings{
		LookbackHours:   7 * 24,
		Concurrency:     8,
		ProjectionHours: emissions.HoursPerMonth,
	}
}

// Service is the engine surface consumed by the HTTP handlers and the CLI.
type Service interface {
	EnrichRegion(ctx context.Context, region string) (domain.EnrichmentReport, error)
}

type Enricher struct {
	deps     Dependencies
	settings Settings
}

func NewEnricher(deps Dependencies, settings Settings) (*Enricher, error) {
	if deps.Inventory == nil || deps.Audit == nil || deps.Metrics == nil ||
		deps.Carbon == nil || deps.Power == nil || deps.Pricing == nil {
		return nil, fmt.Errorf("all gateway dependencies except billing are required")
	}
	if deps.Cache == nil {
		return nil, fmt.Errorf("cache repository is required")
	}
	if deps.Clock == nil {
		deps.Clock = cache.SystemClock()
	}
	if settings.LookbackHours <= 0 {
		settings.LookbackHours = DefaultSettings().LookbackHours
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = DefaultSettings().Concurrency
	}
	if settings.ProjectionHours <= 0 {
		settings.ProjectionHours = DefaultSettings().ProjectionHours
	}
	return &Enricher{deps: deps, settings: settings}, nil
}

// EnrichRegion enriches every resource in the region's inventory snapshot.
// Each resource is an isolated failure domain: one upstream failure degrades
// that result's confidence, never the batch. Results come back sorted by
// resource id so totals and display order are deterministic.
func (e *Enricher) EnrichRegion(ctx context.Context, region string) (domain.EnrichmentReport, error) {
	logger := zerolog.Ctx(ctx)
	now := e.deps.Clock.Now()
	windowStart := now.Add(-time.Duration(e.settings.LookbackHours) * time.Hour)

	resources, err := e.deps.Inventory.ListResources(ctx, region)
	if err != nil {
		return domain.EnrichmentReport{}, fmt.Errorf("failed to list resources for region %s: %w", region, err)
	}

	// Region-scoped signals are fetched once and shared by every worker.
	carbonHistory, carbonOK := e.fetchCarbonHistory(ctx, region)
	if !carbonOK {
		logger.Debug().Str("region", region).Msg("carbon history unavailable for this pass")
	}

	results := make([]domain.EnrichedResult, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.settings.Concurrency)
	for i, res := range resources {
		g.Go(func() error {
			results[i] = e.enrichResource(gctx, res, carbonHistory, windowStart, now)
			return nil
		})
	}
	// Workers never return errors; the group only propagates cancellation.
	if err := g.Wait(); err != nil {
		return domain.EnrichmentReport{}, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Resource.ID < results[j].Resource.ID
	})

	report := domain.EnrichmentReport{
		RunID:       uuid.NewString(),
		Region:      region,
		GeneratedAt: now,
		WindowStart: windowStart,
		WindowEnd:   now,
		Results:     results,
		Totals:      aggregateTotals(results),
	}

	if intensity, ok := e.fetchCurrentIntensity(ctx, region); ok {
		report.CurrentIntensity = &intensity
	}
	if billed, ok := e.fetchBilledCost(ctx, region, windowStart, now); ok {
		report.Totals.BilledCost = &billed
	}
	return report, nil
}

// enrichResource runs the full pipeline for one resource. It never returns
// an error: failures degrade the result instead.
func (e *Enricher) enrichResource(
	ctx context.Context,
	res domain.Resource,
	carbonHistory []domain.Sample,
	windowStart, now time.Time,
) domain.EnrichedResult {
	logger := zerolog.Ctx(ctx)
	result := domain.EnrichedResult{
		Resource: res,
		Method:   domain.MethodNone,
	}

	events, err := e.fetchEvents(ctx, res, windowStart, now)
	if err != nil {
		if errors.Is(err, gateways.ErrAuthentication) {
			reason := err.Error()
			result.FailureReason = &reason
			result.Confidence = domain.ConfidenceLow
			result.Quality = domain.QualityLimited
			logger.Warn().Str("resource", res.ID).Err(err).Msg("enrichment aborted for resource")
			return result
		}
		// Anything else is missing data; reconstruction falls back to the
		// zero-event policy.
		logger.Debug().Str("resource", res.ID).Err(err).Msg("audit events unavailable")
	}

	rec := runtime.Reconstruct(ctx, res, events, windowStart, now)
	result.Intervals = rec.Intervals
	result.SyntheticRuntime = rec.Synthetic
	result.Slots = runtime.AllocateHourly(rec.Intervals, now)

	return e.calculate(ctx, res, rec, carbonHistory, result, now)
}
