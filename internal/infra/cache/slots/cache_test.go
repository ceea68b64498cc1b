package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl), mr
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	start := time.Date(2025, 3, 10, 1, 15, 0, 0, time.UTC)
	slots := []domain.Slot{
		{StaffID: 1, Start: start, End: start.Add(time.Hour), PaddedStart: start.Add(-10 * time.Minute)},
		{StaffID: 2, Start: start, End: start.Add(time.Hour), PaddedStart: start.Add(-10 * time.Minute)},
	}

	_, found, err := cache.Get(ctx, 7, "2025-03-10", nil)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, 7, "2025-03-10", nil, slots))

	got, found, err := cache.Get(ctx, 7, "2025-03-10", nil)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 2)
	assert.True(t, got[0].Start.Equal(start))
	assert.Equal(t, int64(2), got[1].StaffID)
	assert.True(t, got[0].PaddedStart.Equal(start.Add(-10*time.Minute)))

	assert.True(t, mr.Exists("slots:7:2025-03-10:all"))
	assert.Equal(t, time.Minute, mr.TTL("slots:7:2025-03-10:all"))
}

func TestCache_EmptyListIsCached(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, 7, "2025-03-10", ptr.Ptr(int64(3)), []domain.Slot{}))

	got, found, err := cache.Get(ctx, 7, "2025-03-10", ptr.Ptr(int64(3)))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestCache_InvalidateDate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, 7, "2025-03-10", nil, nil))
	require.NoError(t, cache.Set(ctx, 7, "2025-03-10", ptr.Ptr(int64(1)), nil))
	require.NoError(t, cache.Set(ctx, 8, "2025-03-10", nil, nil))
	require.NoError(t, cache.Set(ctx, 7, "2025-03-11", nil, nil))

	require.NoError(t, cache.InvalidateDate(ctx, "2025-03-10"))

	assert.False(t, mr.Exists("slots:7:2025-03-10:all"))
	assert.False(t, mr.Exists("slots:7:2025-03-10:1"))
	assert.False(t, mr.Exists("slots:8:2025-03-10:all"))
	assert.False(t, mr.Exists("slots:index:2025-03-10"))
	assert.True(t, mr.Exists("slots:7:2025-03-11:all"))
}

func TestCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 30*time.Second)

	require.NoError(t, cache.Set(ctx, 7, "2025-03-10", nil, nil))
	mr.FastForward(31 * time.Second)

	_, found, err := cache.Get(ctx, 7, "2025-03-10", nil)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_RedisDown(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)

	_, _, err := cache.Get(ctx, 7, "2025-03-10", nil)
	assert.ErrorIs(t, err, ErrCache)
}
