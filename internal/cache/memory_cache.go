package cache

import (
    "context"
    "sync"
    "time"

    "go.uber.org/zap"

    "esports-live/pkg/models"
)

// MemoryCache implements Cache with a mutex-guarded map.
// Expired entries are not evicted, they fail lookups until overwritten.
type MemoryCache struct {
    mu      sync.RWMutex
    entries map[string]*models.CacheEntry
    now     func() time.Time
    logger  *zap.Logger
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache(logger *zap.Logger) *MemoryCache {
    return &MemoryCache{
        entries: make(map[string]*models.CacheEntry),
        now:     time.Now,
        logger:  logger,
    }
}

// WithClock replaces the time source, used by tests
func (mc *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
    mc.now = now
    return mc
}

// Set stores an entry, replacing whatever was under key
func (mc *MemoryCache) Set(ctx context.Context, key string, value *models.MatchList, ttl time.Duration) error {
    entry := models.NewCacheEntry(key, value, ttl, mc.now())

    mc.mu.Lock()
    mc.entries[key] = entry
    mc.mu.Unlock()

    mc.logger.Debug("cache entry set",
        zap.String("key", key),
        zap.Duration("ttl", ttl))

    return nil
}

// Get retrieves an unexpired entry, nil on miss
func (mc *MemoryCache) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
    mc.mu.RLock()
    entry, found := mc.entries[key]
    mc.mu.RUnlock()

    if !found {
        return nil, nil
    }

    if entry.IsExpiredAt(mc.now()) {
        mc.logger.Debug("cache entry expired", zap.String("key", key))
        return nil, nil
    }

    return entry, nil
}

// Size returns the number of stored entries, expired ones included
func (mc *MemoryCache) Size(ctx context.Context) (int64, error) {
    mc.mu.RLock()
    defer mc.mu.RUnlock()
    return int64(len(mc.entries)), nil
}

// Ping always succeeds for the in-process backend
func (mc *MemoryCache) Ping(ctx context.Context) error {
    return nil
}

// Close releases nothing
func (mc *MemoryCache) Close() error {
    return nil
}
