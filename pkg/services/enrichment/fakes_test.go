package enrichment

import (
	"context"
	"sync"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/de-tools/carbon-atlas/pkg/store/cache"
	"github.com/stretchr/testify/mock"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// memRepo is an in-memory cache.Repository for pipeline tests.
type memRepo struct {
	mu      sync.Mutex
	clock   cache.Clock
	entries map[string]store.CacheEntry
}

func newMemRepo(clock cache.Clock) *memRepo {
	return &memRepo{clock: clock, entries: map[string]store.CacheEntry{}}
}

func (m *memRepo) Get(
	_ context.Context,
	category cache.Category,
	key string,
	maxAge time.Duration,
) (*store.CacheEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[string(category)+"/"+key]
	if !ok || m.clock.Now().Sub(entry.WrittenAt) >= maxAge {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (m *memRepo) Set(
	_ context.Context,
	category cache.Category,
	key string,
	payload []byte,
	source string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[string(category)+"/"+key] = store.CacheEntry{
		Category:  string(category),
		Key:       key,
		Payload:   payload,
		Source:    source,
		WrittenAt: m.clock.Now(),
	}
	return nil
}

func (m *memRepo) IsFresh(
	ctx context.Context,
	category cache.Category,
	key string,
	maxAge time.Duration,
) (bool, error) {
	_, ok, err := m.Get(ctx, category, key, maxAge)
	return ok, err
}

func (m *memRepo) seed(category cache.Category, key string, payload []byte, writtenAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[string(category)+"/"+key] = store.CacheEntry{
		Category:  string(category),
		Key:       key,
		Payload:   payload,
		WrittenAt: writtenAt,
	}
}

type mockInventory struct{ mock.Mock }

func (m *mockInventory) ListResources(ctx context.Context, region string) ([]domain.Resource, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

type mockAudit struct{ mock.Mock }

func (m *mockAudit) LookupEvents(
	ctx context.Context,
	resourceID, region string,
	windowStart, windowEnd time.Time,
) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, resourceID, region, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) FetchCPUHourly(
	ctx context.Context,
	resourceID, region string,
	start, end time.Time,
) ([]domain.Sample, error) {
	args := m.Called(ctx, resourceID, region, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sample), args.Error(1)
}

type mockCarbon struct{ mock.Mock }

func (m *mockCarbon) CurrentIntensity(ctx context.Context, region string) (domain.Sample, error) {
	args := m.Called(ctx, region)
	return args.Get(0).(domain.Sample), args.Error(1)
}

func (m *mockCarbon) History(ctx context.Context, region string, hours int) ([]domain.Sample, error) {
	args := m.Called(ctx, region, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sample), args.Error(1)
}

type mockPower struct{ mock.Mock }

func (m *mockPower) PowerRating(ctx context.Context, resourceType string) (domain.PowerRating, error) {
	args := m.Called(ctx, resourceType)
	return args.Get(0).(domain.PowerRating), args.Error(1)
}

type mockPricing struct{ mock.Mock }

func (m *mockPricing) HourlyPrice(ctx context.Context, resourceType, region string) (float64, error) {
	args := m.Called(ctx, resourceType, region)
	return args.Get(0).(float64), args.Error(1)
}

type mockBilling struct{ mock.Mock }

func (m *mockBilling) PeriodCost(
	ctx context.Context,
	region string,
	start, end time.Time,
) (float64, error) {
	args := m.Called(ctx, region, start, end)
	return args.Get(0).(float64), args.Error(1)
}
