// Package cache is the per-category TTL repository backing every external
// fetch. Entries are replaced atomically (single INSERT OR REPLACE), so
// concurrent readers see either the complete old payload or the complete new
// one. Writes are last-writer-wins; entries for the same key within a TTL
// window are expected to be equivalent.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/store"
)

type Category string

const (
	CategoryCarbonIntensity Category = "carbon-intensity"
	CategoryCarbonHistory   Category = "carbon-history"
	CategoryPowerModel      Category = "power-model"
	CategoryPricing         Category = "pricing"
	CategoryCost            Category = "cost"
	CategoryCPUMetrics      Category = "cpu-metrics"
	CategoryAuditEvents     Category = "audit-events"
)

// DefaultTTL is used for categories without an explicit freshness rule.
const DefaultTTL = 30 * time.Minute

// TTL returns the freshness window for a category. Hardware ratings and
// pricing are near-static; carbon intensity changes hourly; audit events for
// an elapsed window are effectively immutable.
func TTL(c Category) time.Duration {
	switch c {
	case CategoryCarbonIntensity:
		return 60 * time.Minute
	case CategoryCarbonHistory:
		return 120 * time.Minute
	case CategoryPowerModel, CategoryPricing:
		return 7 * 24 * time.Hour
	case CategoryCost:
		return 6 * time.Hour
	case CategoryCPUMetrics:
		return 3 * time.Hour
	case CategoryAuditEvents:
		return 24 * time.Hour
	default:
		return DefaultTTL
	}
}

// Clock abstracts time so tests can simulate staleness.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// Repository is the cache contract the enrichment service depends on.
type Repository interface {
	// Get returns the entry if present and younger than maxAge.
	Get(ctx context.Context, category Category, key string, maxAge time.Duration) (*store.CacheEntry, bool, error)
	// Set writes or replaces the entry for (category, key).
	Set(ctx context.Context, category Category, key string, payload []byte, source string) error
	// IsFresh reports whether an entry exists and is younger than maxAge.
	IsFresh(ctx context.Context, category Category, key string, maxAge time.Duration) (bool, error)
}

type Store struct {
	db    *sql.DB
	clock Clock
}

func NewStore(db *sql.DB, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock()
	}
	return &Store{db: db, clock: clock}
}

func (s *Store) Get(
	ctx context.Context,
	category Category,
	key string,
	maxAge time.Duration,
) (*store.CacheEntry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, source, written_at FROM cache_entries WHERE category = ? AND key = ?`,
		string(category), key,
	)

	entry := store.CacheEntry{Category: string(category), Key: key}
	err := row.Scan(&entry.Payload, &entry.Source, &entry.WrittenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s/%s: %w", category, key, err)
	}

	if s.clock.Now().Sub(entry.WrittenAt) >= maxAge {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (s *Store) Set(
	ctx context.Context,
	category Category,
	key string,
	payload []byte,
	source string,
) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (category, key, payload, source, written_at)
		 VALUES (?, ?, ?, ?, ?)`,
		string(category), key, payload, source, s.clock.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s/%s: %w", category, key, err)
	}
	return nil
}

func (s *Store) IsFresh(
	ctx context.Context,
	category Category,
	key string,
	maxAge time.Duration,
) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT written_at FROM cache_entries WHERE category = ? AND key = ?`,
		string(category), key,
	)

	var writtenAt time.Time
	err := row.Scan(&writtenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %s/%s: %w", category, key, err)
	}
	return s.clock.Now().Sub(writtenAt) < maxAge, nil
}
