package models

import (
    "time"
)

// CacheEntry represents a value stored in the cache
type CacheEntry struct {
    Key       string          `json:"key"`
    Value     *MatchList      `json:"value"`
    TTL       time.Duration   `json:"ttl"`
    CreatedAt time.Time       `json:"created_at"`
    ExpiresAt time.Time       `json:"expires_at"`
}

// NewCacheEntry creates a new cache entry expiring ttl after now
func NewCacheEntry(key string, value *MatchList, ttl time.Duration, now time.Time) *CacheEntry {
    return &CacheEntry{
        Key:       key,
        Value:     value,
        TTL:       ttl,
        CreatedAt: now,
        ExpiresAt: now.Add(ttl),
    }
}

// IsExpiredAt reports whether the entry is no longer readable at t.
// An entry is valid only while t < ExpiresAt.
func (ce *CacheEntry) IsExpiredAt(t time.Time) bool {
    return !t.Before(ce.ExpiresAt)
}

// IsExpired checks if the entry has expired
func (ce *CacheEntry) IsExpired() bool {
    return ce.IsExpiredAt(time.Now())
}

// RemainingTTL returns the remaining time until expiration
func (ce *CacheEntry) RemainingTTL() time.Duration {
    if ce.IsExpired() {
        return 0
    }
    return time.Until(ce.ExpiresAt)
}
