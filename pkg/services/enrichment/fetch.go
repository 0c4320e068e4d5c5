package enrichment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/store/cache"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// staleFallbackMaxAge bounds how old a cached entry may be when it is used
// as degraded fallback after a live fetch failed.
const staleFallbackMaxAge = 30 * 24 * time.Hour

// fetchCached consults the cache before the gateway. A gateway failure other
// than authentication degrades to any cached entry within the stale bound
// instead of failing the resource; a slow upstream therefore costs one
// result's confidence, not the batch's latency.
func fetchCached[T any](
	ctx context.Context,
	repo cache.Repository,
	category cache.Category,
	key, source string,
	fetch func(context.Context) (T, error),
) (T, error) {
	logger := zerolog.Ctx(ctx)
	var zero T

	if entry, ok, err := repo.Get(ctx, category, key, cache.TTL(category)); err == nil && ok {
		var cached T
		if err := json.Unmarshal(entry.Payload, &cached); err == nil {
			return cached, nil
		}
		logger.Warn().Str("category", string(category)).Str("key", key).Msg("discarding undecodable cache entry")
	}

	v, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, gateways.ErrAuthentication) {
			return zero, err
		}
		if entry, ok, gerr := repo.Get(ctx, category, key, staleFallbackMaxAge); gerr == nil && ok {
			var stale T
			if uerr := json.Unmarshal(entry.Payload, &stale); uerr == nil {
				logger.Debug().
					Str("category", string(category)).
					Str("key", key).
					Msg("live fetch failed, using stale cache entry")
				return stale, nil
			}
		}
		return zero, err
	}

	if payload, merr := json.Marshal(v); merr == nil {
		if serr := repo.Set(ctx, category, key, payload, source); serr != nil {
			logger.Warn().Err(serr).Str("category", string(category)).Msg("failed to cache fetch result")
		}
	}
	return v, nil
}

func (e *Enricher) fetchEvents(
	ctx context.Context,
	res domain.Resource,
	windowStart, now time.Time,
) ([]domain.AuditEvent, error) {
	key := fmt.Sprintf("%s/%s/%s", res.ID, windowStart.Format(time.RFC3339), now.Format(time.RFC3339))
	return fetchCached(ctx, e.deps.Cache, cache.CategoryAuditEvents, key, "audit",
		func(ctx context.Context) ([]domain.AuditEvent, error) {
			return e.deps.Audit.LookupEvents(ctx, res.ID, res.Region, windowStart, now)
		})
}

func (e *Enricher) fetchCPUSamples(
	ctx context.Context,
	res domain.Resource,
	start, end time.Time,
) []domain.Sample {
	samples, err := fetchCached(ctx, e.deps.Cache, cache.CategoryCPUMetrics, res.ID, "metrics",
		func(ctx context.Context) ([]domain.Sample, error) {
			return e.deps.Metrics.FetchCPUHourly(ctx, res.ID, res.Region, start, end)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("resource", res.ID).Err(err).Msg("cpu metrics unavailable")
		return nil
	}
	return samples
}

func (e *Enricher) fetchCarbonHistory(ctx context.Context, region string) ([]domain.Sample, bool) {
	samples, err := fetchCached(ctx, e.deps.Cache, cache.CategoryCarbonHistory, region, "grid",
		func(ctx context.Context) ([]domain.Sample, error) {
			return e.deps.Carbon.History(ctx, region, domain.HoursPerGrid)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("region", region).Err(err).Msg("carbon history unavailable")
		return nil, false
	}
	return samples, len(samples) > 0
}

func (e *Enricher) fetchCurrentIntensity(ctx context.Context, region string) (float64, bool) {
	sample, err := fetchCached(ctx, e.deps.Cache, cache.CategoryCarbonIntensity, region, "grid",
		func(ctx context.Context) (domain.Sample, error) {
			return e.deps.Carbon.CurrentIntensity(ctx, region)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("region", region).Err(err).Msg("current intensity unavailable")
		return 0, false
	}
	return sample.Value, true
}

func (e *Enricher) fetchPowerRating(ctx context.Context, resourceType string) (domain.PowerRating, bool) {
	rating, err := fetchCached(ctx, e.deps.Cache, cache.CategoryPowerModel, resourceType, "power-model",
		func(ctx context.Context) (domain.PowerRating, error) {
			return e.deps.Power.PowerRating(ctx, resourceType)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("type", resourceType).Err(err).Msg("power rating unavailable")
		return domain.PowerRating{}, false
	}
	return rating, true
}

func (e *Enricher) fetchPrice(ctx context.Context, resourceType, region string) (float64, bool) {
	key := fmt.Sprintf("%s/%s", resourceType, region)
	price, err := fetchCached(ctx, e.deps.Cache, cache.CategoryPricing, key, "pricing",
		func(ctx context.Context) (float64, error) {
			return e.deps.Pricing.HourlyPrice(ctx, resourceType, region)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("type", resourceType).Err(err).Msg("pricing unavailable")
		return 0, false
	}
	return price, true
}

func (e *Enricher) fetchBilledCost(ctx context.Context, region string, start, end time.Time) (float64, bool) {
	if e.deps.Billing == nil {
		return 0, false
	}
	key := fmt.Sprintf("%s/%s/%s", region, start.Format(time.RFC3339), end.Format(time.RFC3339))
	cost, err := fetchCached(ctx, e.deps.Cache, cache.CategoryCost, key, "billing",
		func(ctx context.Context) (float64, error) {
			return e.deps.Billing.PeriodCost(ctx, region, start, end)
		})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("region", region).Err(err).Msg("billed cost unavailable")
		return 0, false
	}
	return cost, true
}
