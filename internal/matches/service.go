package matches

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"esports-live/internal/cache"
	"esports-live/pkg/models"
)

// Upstream is the part of upstream.Client the service depends on
type Upstream interface {
	LiveURL(query string) string
	ProURL() string
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Config controls cache lifetimes and miss coalescing
type Config struct {
	DefaultTTL time.Duration
	RecentTTL  time.Duration
	// Coalesce lets concurrent misses on one key share a single upstream call.
	// When false every miss fetches on its own and the last write wins.
	Coalesce bool
}

// DefaultConfig returns 10s for live data and 30s for recent matches
func DefaultConfig() Config {
	return Config{
		DefaultTTL: 10 * time.Second,
		RecentTTL:  30 * time.Second,
	}
}

type normalizer func(body []byte) []models.Match

// Service answers match queries from the cache or the upstream API
type Service struct {
	cache    cache.Cache
	upstream Upstream
	config   Config
	group    singleflight.Group
	logger   *zap.Logger
}

// NewService wires a cache and an upstream client together
func NewService(c cache.Cache, up Upstream, config Config, logger *zap.Logger) *Service {
	return &Service{
		cache:    c,
		upstream: up,
		config:   config,
		logger:   logger,
	}
}

// Live returns live matches, passing rawQuery through to the upstream
func (s *Service) Live(ctx context.Context, rawQuery string) (*models.MatchList, bool, error) {
	url := s.upstream.LiveURL(CanonicalQuery(rawQuery))
	return s.serve(ctx, url, s.config.DefaultTTL, NormalizeLive)
}

// Recent returns the most recent finished pro matches
func (s *Service) Recent(ctx context.Context) (*models.MatchList, bool, error) {
	return s.serve(ctx, s.upstream.ProURL(), s.config.RecentTTL, NormalizePro)
}

// serve uses the upstream URL as cache key. The boolean result reports a cache hit.
func (s *Service) serve(ctx context.Context, url string, ttl time.Duration, normalize normalizer) (*models.MatchList, bool, error) {
	entry, err := s.cache.Get(ctx, url)
	if err != nil {
		s.logger.Warn("cache lookup failed, fetching upstream", zap.Error(err), zap.String("key", url))
	} else if entry != nil && entry.Value != nil {
		s.logger.Debug("cache hit", zap.String("key", url))
		return entry.Value, true, nil
	}

	s.logger.Debug("cache miss", zap.String("key", url))

	// A disconnecting caller must not cancel the fetch or the cache write.
	ctx = context.WithoutCancel(ctx)

	if !s.config.Coalesce {
		list, err := s.load(ctx, url, ttl, normalize)
		return list, false, err
	}

	v, err, shared := s.group.Do(url, func() (interface{}, error) {
		return s.load(ctx, url, ttl, normalize)
	})
	if err != nil {
		return nil, false, err
	}
	if shared {
		s.logger.Debug("upstream fetch shared", zap.String("key", url))
	}
	return v.(*models.MatchList), false, nil
}

func (s *Service) load(ctx context.Context, url string, ttl time.Duration, normalize normalizer) (*models.MatchList, error) {
	body, err := s.upstream.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	list := models.NewMatchList(normalize(body))

	if err := s.cache.Set(ctx, url, list, ttl); err != nil {
		s.logger.Warn("failed to populate cache", zap.Error(err), zap.String("key", url))
	}

	return list, nil
}
