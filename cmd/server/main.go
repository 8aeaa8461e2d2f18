package main

import (
    "context"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"

    "esports-live/internal/cache"
    "esports-live/internal/config"
    "esports-live/internal/handlers"
    "esports-live/internal/matches"
    "esports-live/internal/middleware"
    "esports-live/internal/upstream"
)

func main() {
    // Load configuration
    cfg, err := config.LoadConfig()
    if err != nil {
        fmt.Printf("Failed to load config: %v\n", err)
        os.Exit(1)
    }

    // Configure logger
    logger, err := setupLogger(&cfg.Logger)
    if err != nil {
        fmt.Printf("Failed to setup logger: %v\n", err)
        os.Exit(1)
    }
    defer logger.Sync()

    logger.Info("Starting Esports Live proxy",
        zap.String("version", "1.0.0"),
        zap.String("address", cfg.Server.GetAddress()),
        zap.String("cache_backend", cfg.Cache.Backend),
    )

    // Initialize cache
    cacheInstance, err := cache.New(&cfg.Cache, logger.Named("cache"))
    if err != nil {
        logger.Fatal("Failed to initialize cache", zap.Error(err))
    }
    defer cacheInstance.Close()

    // Upstream client and match service
    client := upstream.NewClient(&cfg.Upstream, logger.Named("upstream"))
    service := matches.NewService(cacheInstance, client, matches.Config{
        DefaultTTL: cfg.Cache.DefaultTTL,
        RecentTTL:  cfg.Cache.RecentTTL,
        Coalesce:   cfg.Upstream.Coalesce,
    }, logger.Named("matches"))

    // Configure Gin
    if cfg.Logger.Level == "debug" {
        gin.SetMode(gin.DebugMode)
    } else {
        gin.SetMode(gin.ReleaseMode)
    }

    // Create router
    router := gin.New()

    // Middlewares
    router.Use(middleware.Recovery(logger))
    router.Use(middleware.Logger(logger))
    router.Use(middleware.CORS())
    router.Use(middleware.RequestID())

    handlers.RegisterRoutes(router,
        handlers.NewMatchHandler(service, logger),
        handlers.NewHealthHandler(cacheInstance, logger),
        handlers.Static(cfg.Static.Dir, cfg.Static.Index),
    )

    // Configure HTTP server
    server := &http.Server{
        Addr:         cfg.Server.GetAddress(),
        Handler:      router,
        ReadTimeout:  cfg.Server.ReadTimeout,
        WriteTimeout: cfg.Server.WriteTimeout,
        IdleTimeout:  cfg.Server.IdleTimeout,
    }

    // Start server in goroutine
    go func() {
        logger.Info("Server starting", zap.String("address", server.Addr))
        if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            logger.Fatal("Failed to start server", zap.Error(err))
        }
    }()

    // Wait for interrupt signal
    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit
    logger.Info("Shutting down server...")

    // Graceful shutdown
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    if err := server.Shutdown(ctx); err != nil {
        logger.Error("Server forced to shutdown", zap.Error(err))
    }

    logger.Info("Server exited")
}

// setupLogger configures the logger according to the configuration
func setupLogger(cfg *config.LoggerConfig) (*zap.Logger, error) {
    var level zapcore.Level
    switch cfg.Level {
    case "debug":
        level = zapcore.DebugLevel
    case "info":
        level = zapcore.InfoLevel
    case "warn":
        level = zapcore.WarnLevel
    case "error":
        level = zapcore.ErrorLevel
    default:
        level = zapcore.InfoLevel
    }

    encoding := cfg.Format
    if encoding != "console" {
        encoding = "json"
    }

    config := zap.Config{
        Level:       zap.NewAtomicLevelAt(level),
        Development: false,
        Sampling: &zap.SamplingConfig{
            Initial:    100,
            Thereafter: 100,
        },
        Encoding: encoding,
        EncoderConfig: zapcore.EncoderConfig{
            TimeKey:        "timestamp",
            LevelKey:       "level",
            NameKey:        "logger",
            CallerKey:      "caller",
            FunctionKey:    zapcore.OmitKey,
            MessageKey:     "message",
            StacktraceKey:  "stacktrace",
            LineEnding:     zapcore.DefaultLineEnding,
            EncodeLevel:    zapcore.LowercaseLevelEncoder,
            EncodeTime:     zapcore.ISO8601TimeEncoder,
            EncodeDuration: zapcore.SecondsDurationEncoder,
            EncodeCaller:   zapcore.ShortCallerEncoder,
        },
        OutputPaths:      []string{cfg.OutputPath},
        ErrorOutputPaths: []string{cfg.OutputPath},
    }

    return config.Build()
}
