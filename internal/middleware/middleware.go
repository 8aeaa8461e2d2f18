package middleware

import (
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "go.uber.org/zap"
)

// RequestIDHeader carries the request identifier in both directions
const RequestIDHeader = "X-Request-ID"

// Logger middleware for request logging
func Logger(logger *zap.Logger) gin.HandlerFunc {
    return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
        logger.Info("HTTP Request",
            zap.String("client_ip", param.ClientIP),
            zap.String("method", param.Method),
            zap.String("path", param.Path),
            zap.Int("status_code", param.StatusCode),
            zap.Duration("latency", param.Latency),
            zap.String("user_agent", param.Request.UserAgent()),
            zap.String("request_id", param.Request.Header.Get(RequestIDHeader)),
        )
        return ""
    })
}

// CORS middleware: any origin, any method, any header
func CORS() gin.HandlerFunc {
    return func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT")

        // Echo requested headers back, a literal "*" is ignored by some browsers
        if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
            c.Header("Access-Control-Allow-Headers", requested)
        } else {
            c.Header("Access-Control-Allow-Headers", "*")
        }

        if c.Request.Method == http.MethodOptions {
            c.AbortWithStatus(http.StatusNoContent)
            return
        }

        c.Next()
    }
}

// Recovery middleware personalizado
func Recovery(logger *zap.Logger) gin.HandlerFunc {
    return gin.RecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered interface{}) {
        logger.Error("Panic recovered",
            zap.Any("error", recovered),
            zap.String("path", c.Request.URL.Path),
            zap.String("method", c.Request.Method),
        )
        c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
    })
}

// RequestID middleware para trazabilidad
func RequestID() gin.HandlerFunc {
    return func(c *gin.Context) {
        requestID := c.GetHeader(RequestIDHeader)
        if requestID == "" {
            requestID = uuid.NewString()
            c.Request.Header.Set(RequestIDHeader, requestID)
        }
        c.Header(RequestIDHeader, requestID)
        c.Set("RequestID", requestID)
        c.Next()
    }
}
