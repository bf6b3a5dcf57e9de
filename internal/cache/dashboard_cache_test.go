package cache_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"hostelmate-data/internal/cache"
	"hostelmate-data/internal/dashboard"
	"hostelmate-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardCache_Key(t *testing.T) {
	c := cache.NewDashboardCache(newFakeKV(), time.Minute, zap.NewNop())
	today := domain.NewDate(2026, time.October, 15)

	a := c.Key(domain.Caller{OwnerID: "owner-1"}, today, url.Values{"property_id": {"p-1"}, "start_date": {"2026-01-01"}})
	b := c.Key(domain.Caller{OwnerID: "owner-1"}, today, url.Values{"start_date": {"2026-01-01"}, "property_id": {"p-1"}})
	assert.Equal(t, a, b, "parameter order must not matter")

	other := c.Key(domain.Caller{OwnerID: "owner-2"}, today, url.Values{"property_id": {"p-1"}, "start_date": {"2026-01-01"}})
	assert.NotEqual(t, a, other)

	privileged := c.Key(domain.Caller{OwnerID: "owner-1", Privileged: true}, today, url.Values{"property_id": {"p-1"}, "start_date": {"2026-01-01"}})
	assert.NotEqual(t, a, privileged)

	tomorrow := c.Key(domain.Caller{OwnerID: "owner-1"}, today.AddDays(1), url.Values{"property_id": {"p-1"}, "start_date": {"2026-01-01"}})
	assert.NotEqual(t, a, tomorrow)
}

func TestDashboardCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := cache.NewDashboardCache(kv, time.Minute, zap.NewNop())

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	p := &dashboard.Payload{}
	p.KPIs.TotalProperties = 3
	p.KPIs.CurrentOccupancyRate = 33.33
	p.Charts.MonthlyTrends = []dashboard.TrendRow{}
	c.Set(ctx, "k", p)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 3, got.KPIs.TotalProperties)
	assert.Equal(t, 33.33, got.KPIs.CurrentOccupancyRate)
}

func TestDashboardCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := cache.NewDashboardCache(newFakeKV(), 10*time.Millisecond, zap.NewNop())

	c.Set(ctx, "k", &dashboard.Payload{})
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestDashboardCache_FailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = errRedisDown
	c := cache.NewDashboardCache(kv, time.Minute, zap.NewNop())

	assert.NotPanics(t, func() { c.Set(ctx, "k", &dashboard.Payload{}) })
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestDashboardCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	require.NoError(t, kv.Set(ctx, "k", "{not json", 0))
	c := cache.NewDashboardCache(kv, time.Minute, zap.NewNop())

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
