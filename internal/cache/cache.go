package cache

import (
    "context"
    "fmt"
    "time"

    "go.uber.org/zap"

    "esports-live/pkg/models"
)

const (
    // BackendMemory keeps entries in process memory
    BackendMemory = "memory"
    // BackendRedis shares entries through a Redis server
    BackendRedis = "redis"
)

// Cache defines the operations the match service needs from a cache backend.
// Get never returns an expired entry; Set replaces any previous entry.
type Cache interface {
    Get(ctx context.Context, key string) (*models.CacheEntry, error)
    Set(ctx context.Context, key string, value *models.MatchList, ttl time.Duration) error

    // Statistics
    Size(ctx context.Context) (int64, error)

    // Connection
    Ping(ctx context.Context) error
    Close() error
}

// CacheConfig configuration for the cache
type CacheConfig struct {
    Backend      string        `mapstructure:"backend"`
    DefaultTTL   time.Duration `mapstructure:"default_ttl"`
    RecentTTL    time.Duration `mapstructure:"recent_ttl"`
    KeyPrefix    string        `mapstructure:"key_prefix"`
    Addresses    []string      `mapstructure:"addresses"`
    Password     string        `mapstructure:"password"`
    Database     int           `mapstructure:"database"`
    MaxRetries   int           `mapstructure:"max_retries"`
    PoolSize     int           `mapstructure:"pool_size"`
    MinIdleConns int           `mapstructure:"min_idle_conns"`
    DialTimeout  time.Duration `mapstructure:"dial_timeout"`
    ReadTimeout  time.Duration `mapstructure:"read_timeout"`
    WriteTimeout time.Duration `mapstructure:"write_timeout"`
    PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

// DefaultCacheConfig returns the default configuration
func DefaultCacheConfig() *CacheConfig {
    return &CacheConfig{
        Backend:      BackendMemory,
        DefaultTTL:   10 * time.Second,
        RecentTTL:    30 * time.Second,
        KeyPrefix:    "esports-live:",
        Addresses:    []string{"localhost:6379"},
        Password:     "",
        Database:     0,
        MaxRetries:   3,
        PoolSize:     10,
        MinIdleConns: 5,
        DialTimeout:  5 * time.Second,
        ReadTimeout:  3 * time.Second,
        WriteTimeout: 3 * time.Second,
        PoolTimeout:  4 * time.Second,
    }
}

// New builds the backend selected by config.Backend
func New(config *CacheConfig, logger *zap.Logger) (Cache, error) {
    if config == nil {
        config = DefaultCacheConfig()
    }

    switch config.Backend {
    case "", BackendMemory:
        return NewMemoryCache(logger), nil
    case BackendRedis:
        rc, err := NewRedisCache(config, logger)
        if err != nil {
            return nil, err
        }
        return rc, nil
    default:
        return nil, fmt.Errorf("unknown cache backend %q", config.Backend)
    }
}
