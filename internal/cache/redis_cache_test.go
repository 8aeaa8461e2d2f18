package cache

import (
    "context"
    "encoding/json"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap/zaptest"

    "esports-live/pkg/models"
)

// setupRedisCache needs a Redis server on localhost:6379
func setupRedisCache(t *testing.T) *RedisCache {
    config := DefaultCacheConfig()
    config.Backend = BackendRedis
    config.KeyPrefix = "esports-live-test:" + t.Name() + ":"

    cache, err := NewRedisCache(config, zaptest.NewLogger(t))
    if err != nil {
        t.Skipf("redis not available: %v", err)
    }
    t.Cleanup(func() { _ = cache.Close() })
    return cache
}

func TestRedisCache_SetAndGet(t *testing.T) {
    cache := setupRedisCache(t)
    ctx := context.Background()

    value := models.NewMatchList([]models.Match{{
        ID:     json.RawMessage(`7712345678`),
        Game:   models.GameDota2,
        Team1:  "Team Spirit",
        Team2:  "Tundra",
        Status: "Live • 12m",
        Score:  "10 - 4",
        Raw:    json.RawMessage(`{"match_id":7712345678}`),
    }})

    require.NoError(t, cache.Set(ctx, "live", value, time.Minute))

    entry, err := cache.Get(ctx, "live")
    require.NoError(t, err)
    require.NotNil(t, entry)
    assert.Equal(t, 1, entry.Value.Count)
    assert.Equal(t, "Team Spirit", entry.Value.Items[0].Team1)
    assert.JSONEq(t, `7712345678`, string(entry.Value.Items[0].ID))

    size, err := cache.Size(ctx)
    assert.NoError(t, err)
    assert.Equal(t, int64(1), size)
}

func TestRedisCache_GetNonExistent(t *testing.T) {
    cache := setupRedisCache(t)

    entry, err := cache.Get(context.Background(), "missing")
    assert.NoError(t, err)
    assert.Nil(t, entry)
}

func TestRedisCache_SetWithExpiration(t *testing.T) {
    cache := setupRedisCache(t)
    ctx := context.Background()

    require.NoError(t, cache.Set(ctx, "expiring", models.NewMatchList(nil), 100*time.Millisecond))

    entry, err := cache.Get(ctx, "expiring")
    assert.NoError(t, err)
    assert.NotNil(t, entry)

    // Esperar a que expire
    time.Sleep(150 * time.Millisecond)

    entry, err = cache.Get(ctx, "expiring")
    assert.NoError(t, err)
    assert.Nil(t, entry)
}

func TestRedisCache_Ping(t *testing.T) {
    cache := setupRedisCache(t)
    assert.NoError(t, cache.Ping(context.Background()))
}
