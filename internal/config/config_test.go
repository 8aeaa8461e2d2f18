package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-live/internal/cache"
	"esports-live/internal/upstream"
)

func TestLoad_Defaults(t *testing.T) {

	config, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", config.Server.GetAddress())
	assert.Equal(t, cache.BackendMemory, config.Cache.Backend)
	assert.Equal(t, 10*time.Second, config.Cache.DefaultTTL)
	assert.Equal(t, 30*time.Second, config.Cache.RecentTTL)
	assert.Equal(t, []string{"localhost:6379"}, config.Cache.Addresses)
	assert.Equal(t, upstream.DefaultLiveURL, config.Upstream.LiveURL)
	assert.Equal(t, upstream.DefaultProURL, config.Upstream.ProURL)
	assert.Equal(t, 15*time.Second, config.Upstream.Timeout)
	assert.False(t, config.Upstream.Coalesce)
	assert.Equal(t, "static", config.Static.Dir)
	assert.Equal(t, "index.html", config.Static.Index)
	assert.Equal(t, "info", config.Logger.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ESL_SERVER_PORT", "9090")
	t.Setenv("ESL_CACHE_BACKEND", "redis")
	t.Setenv("ESL_CACHE_ADDRESSES", "redis-a:6379, redis-b:6379")
	t.Setenv("ESL_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("ESL_UPSTREAM_COALESCE", "true")

	config, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, cache.BackendRedis, config.Cache.Backend)
	assert.Equal(t, []string{"redis-a:6379", "redis-b:6379"}, config.Cache.Addresses)
	assert.Equal(t, 5*time.Second, config.Upstream.Timeout)
	assert.True(t, config.Upstream.Coalesce)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("ESL_CACHE_BACKEND", "memcached")

	_, err := Load(viper.New())
	assert.Error(t, err)
}
