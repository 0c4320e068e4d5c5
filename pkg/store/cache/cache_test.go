package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestStore(t *testing.T, clock Clock) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "cache-test-*")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	})

	db, err := NewDB(Settings{DbPath: filepath.Join(tmpDir, "cache.db")})
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	})

	return NewStore(db, clock)
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(t, clock)

	err := s.Set(ctx, CategoryPowerModel, "m5.large", []byte(`{"avg_watts":12.5}`), "embedded")
	require.NoError(t, err)

	entry, ok, err := s.Get(ctx, CategoryPowerModel, "m5.large", TTL(CategoryPowerModel))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"avg_watts":12.5}`), entry.Payload)
	assert.Equal(t, "embedded", entry.Source)
}

func TestStore_Get_Absent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeClock{now: time.Now()})

	entry, ok, err := s.Get(ctx, CategoryPricing, "missing", TTL(CategoryPricing))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entry)
}

func TestStore_Get_Stale(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(t, clock)

	require.NoError(t, s.Set(ctx, CategoryCarbonIntensity, "eu-west-1", []byte(`{"value":210}`), "grid-api"))

	// Fresh right after the write.
	fresh, err := s.IsFresh(ctx, CategoryCarbonIntensity, "eu-west-1", TTL(CategoryCarbonIntensity))
	require.NoError(t, err)
	assert.True(t, fresh)

	// Advance past the 60 minute intensity TTL without touching the store.
	clock.now = clock.now.Add(61 * time.Minute)

	_, ok, err := s.Get(ctx, CategoryCarbonIntensity, "eu-west-1", TTL(CategoryCarbonIntensity))
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err = s.IsFresh(ctx, CategoryCarbonIntensity, "eu-west-1", TTL(CategoryCarbonIntensity))
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestStore_Set_Overwrites(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(t, clock)

	require.NoError(t, s.Set(ctx, CategoryPricing, "m5.large/eu-west-1", []byte(`0.096`), "embedded"))
	clock.now = clock.now.Add(time.Minute)
	require.NoError(t, s.Set(ctx, CategoryPricing, "m5.large/eu-west-1", []byte(`0.107`), "embedded"))

	entry, ok, err := s.Get(ctx, CategoryPricing, "m5.large/eu-west-1", TTL(CategoryPricing))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`0.107`), entry.Payload)
}

func TestStore_Get_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT payload, source, written_at FROM cache_entries").
		WillReturnError(fmt.Errorf("connection reset"))

	s := NewStore(db, &fakeClock{now: time.Now()})
	_, ok, err := s.Get(context.Background(), CategoryAuditEvents, "i-123", TTL(CategoryAuditEvents))
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to read cache entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTTL_PerCategory(t *testing.T) {
	assert.Equal(t, 60*time.Minute, TTL(CategoryCarbonIntensity))
	assert.Equal(t, 120*time.Minute, TTL(CategoryCarbonHistory))
	assert.Equal(t, 7*24*time.Hour, TTL(CategoryPowerModel))
	assert.Equal(t, 7*24*time.Hour, TTL(CategoryPricing))
	assert.Equal(t, 6*time.Hour, TTL(CategoryCost))
	assert.Equal(t, 3*time.Hour, TTL(CategoryCPUMetrics))
	assert.Equal(t, 24*time.Hour, TTL(CategoryAuditEvents))
	assert.Equal(t, DefaultTTL, TTL(Category("unknown")))
}
