package cache

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "github.com/go-redis/redis/v8"
    "go.uber.org/zap"

    "esports-live/pkg/models"
)

// RedisCache implements the Cache interface using Redis, so several
// proxy instances can share upstream responses
type RedisCache struct {
    client redis.UniversalClient
    logger *zap.Logger
    config *CacheConfig
}

// NewRedisCache creates a new instance of RedisCache
func NewRedisCache(config *CacheConfig, logger *zap.Logger) (*RedisCache, error) {
    if config == nil {
        config = DefaultCacheConfig()
    }

    // Configure the Redis client
    options := &redis.UniversalOptions{
        Addrs:        config.Addresses,
        Password:     config.Password,
        DB:           config.Database,
        MaxRetries:   config.MaxRetries,
        PoolSize:     config.PoolSize,
        MinIdleConns: config.MinIdleConns,
        DialTimeout:  config.DialTimeout,
        ReadTimeout:  config.ReadTimeout,
        WriteTimeout: config.WriteTimeout,
        PoolTimeout:  config.PoolTimeout,
    }

    client := redis.NewUniversalClient(options)

    // Check connection
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil, fmt.Errorf("failed to connect to Redis: %w", err)
    }

    return &RedisCache{
        client: client,
        logger: logger,
        config: config,
    }, nil
}

func (rc *RedisCache) key(key string) string {
    return rc.config.KeyPrefix + key
}

// Set stores an entry in Redis with a native expiration
func (rc *RedisCache) Set(ctx context.Context, key string, value *models.MatchList, ttl time.Duration) error {
    entry := models.NewCacheEntry(key, value, ttl, time.Now())

    data, err := json.Marshal(entry)
    if err != nil {
        rc.logger.Error("failed to marshal cache entry", zap.Error(err), zap.String("key", key))
        return fmt.Errorf("failed to marshal cache entry: %w", err)
    }

    err = rc.client.Set(ctx, rc.key(key), data, ttl).Err()
    if err != nil {
        rc.logger.Error("failed to set cache entry", zap.Error(err), zap.String("key", key))
        return fmt.Errorf("failed to set cache entry: %w", err)
    }

    rc.logger.Debug("cache entry set successfully",
        zap.String("key", key),
        zap.Duration("ttl", ttl))

    return nil
}

// Get retrieves an entry from Redis
func (rc *RedisCache) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
    data, err := rc.client.Get(ctx, rc.key(key)).Result()
    if err != nil {
        if err == redis.Nil {
            return nil, nil // Cache miss
        }
        rc.logger.Error("failed to get cache entry", zap.Error(err), zap.String("key", key))
        return nil, fmt.Errorf("failed to get cache entry: %w", err)
    }

    var entry models.CacheEntry
    if err := json.Unmarshal([]byte(data), &entry); err != nil {
        rc.logger.Error("failed to unmarshal cache entry", zap.Error(err), zap.String("key", key))
        return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
    }

    // Redis expiry has millisecond resolution, double check the absolute deadline
    if entry.IsExpired() {
        rc.logger.Debug("cache entry expired, removing", zap.String("key", key))
        _ = rc.client.Del(ctx, rc.key(key)).Err()
        return nil, nil
    }

    rc.logger.Debug("cache entry retrieved successfully",
        zap.String("key", key),
        zap.Duration("remaining_ttl", entry.RemainingTTL()))
    return &entry, nil
}

// Size returns the number of keys under the configured prefix
func (rc *RedisCache) Size(ctx context.Context) (int64, error) {
    keys, err := rc.client.Keys(ctx, rc.config.KeyPrefix+"*").Result()
    if err != nil {
        rc.logger.Error("failed to get cache size", zap.Error(err))
        return 0, fmt.Errorf("failed to get cache size: %w", err)
    }

    return int64(len(keys)), nil
}

// Ping verifica la conexión con Redis
func (rc *RedisCache) Ping(ctx context.Context) error {
    err := rc.client.Ping(ctx).Err()
    if err != nil {
        rc.logger.Error("ping failed", zap.Error(err))
        return fmt.Errorf("ping failed: %w", err)
    }

    return nil
}

// Close cierra la conexión con Redis
func (rc *RedisCache) Close() error {
    err := rc.client.Close()
    if err != nil {
        rc.logger.Error("failed to close Redis connection", zap.Error(err))
        return fmt.Errorf("failed to close Redis connection: %w", err)
    }

    rc.logger.Info("Redis connection closed successfully")
    return nil
}
