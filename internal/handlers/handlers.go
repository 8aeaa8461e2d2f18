package handlers

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "esports-live/internal/cache"
    "esports-live/internal/upstream"
    "esports-live/pkg/models"
)

// MatchService is what the match endpoints need from matches.Service
type MatchService interface {
    Live(ctx context.Context, rawQuery string) (*models.MatchList, bool, error)
    Recent(ctx context.Context) (*models.MatchList, bool, error)
}

// MatchHandler handles the Dota match endpoints
type MatchHandler struct {
    service MatchService
    logger  *zap.Logger
}

// NewMatchHandler creates a new handler
func NewMatchHandler(service MatchService, logger *zap.Logger) *MatchHandler {
    return &MatchHandler{
        service: service,
        logger:  logger,
    }
}

// Live handles GET /api/dota/live, forwarding the query string upstream
func (h *MatchHandler) Live(c *gin.Context) {
    list, fromCache, err := h.service.Live(c.Request.Context(), c.Request.URL.RawQuery)
    if err != nil {
        h.writeError(c, err)
        return
    }

    c.JSON(http.StatusOK, models.NewMatchResponse(list, fromCache))
}

// Recent handles GET /api/dota/recent
func (h *MatchHandler) Recent(c *gin.Context) {
    list, fromCache, err := h.service.Recent(c.Request.Context())
    if err != nil {
        h.writeError(c, err)
        return
    }

    c.JSON(http.StatusOK, models.NewMatchResponse(list, fromCache))
}

func (h *MatchHandler) writeError(c *gin.Context, err error) {
    var httpErr *upstream.HTTPError
    if errors.As(err, &httpErr) {
        h.logger.Warn("upstream error",
            zap.Int("status_code", httpErr.StatusCode),
            zap.String("upstream_url", httpErr.URL),
            zap.String("path", c.Request.URL.Path))
        c.JSON(http.StatusBadGateway, gin.H{"detail": httpErr.Error()})
        return
    }

    h.logger.Error("failed to serve matches", zap.Error(err), zap.String("path", c.Request.URL.Path))
    c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

// HealthHandler reports on the cache backend
type HealthHandler struct {
    cache  cache.Cache
    logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cache cache.Cache, logger *zap.Logger) *HealthHandler {
    return &HealthHandler{
        cache:  cache,
        logger: logger,
    }
}

// Health maneja GET /health
func (h *HealthHandler) Health(c *gin.Context) {
    err := h.cache.Ping(c.Request.Context())
    if err != nil {
        h.logger.Error("health check failed", zap.Error(err))
        c.JSON(http.StatusServiceUnavailable, gin.H{
            "status": "unhealthy",
            "error":  err.Error(),
        })
        return
    }

    size, err := h.cache.Size(c.Request.Context())
    if err != nil {
        h.logger.Warn("failed to get cache size", zap.Error(err))
    }

    c.JSON(http.StatusOK, gin.H{
        "status":        "healthy",
        "cache_entries": size,
        "timestamp":     time.Now(),
    })
}
