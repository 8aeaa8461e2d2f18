package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API, health checks and the static front-end
func RegisterRoutes(router *gin.Engine, matches *MatchHandler, health *HealthHandler, static gin.HandlerFunc) {
    // Known paths with the wrong method answer 405, not the static fallback
    router.HandleMethodNotAllowed = true
    router.NoMethod(func(c *gin.Context) {
        c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
    })

    // Health routes
    router.GET("/health", health.Health)
    router.GET("/ping", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"message": "pong"})
    })

    api := router.Group("/api")
    {
        dota := api.Group("/dota")
        {
            dota.GET("/live", matches.Live)
            dota.GET("/recent", matches.Recent)
        }
    }

    // Everything else is the front-end bundle
    router.NoRoute(static)
}
