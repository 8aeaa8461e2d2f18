package handlers

import (
    "net/http"
    "os"
    "path"
    "path/filepath"
    "strings"

    "github.com/gin-gonic/gin"
)

// Static serves the front-end bundle from dir. Paths that match no file
// fall back to the index page; unknown /api paths stay JSON 404s.
func Static(dir, index string) gin.HandlerFunc {
    return func(c *gin.Context) {
        reqPath := c.Request.URL.Path
        if strings.HasPrefix(reqPath, "/api/") || reqPath == "/api" {
            c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
            return
        }

        if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
            c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
            return
        }

        // path.Clean on a rooted path cannot climb above dir
        name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+reqPath)))
        if info, err := os.Stat(name); err == nil {
            if !info.IsDir() {
                c.File(name)
                return
            }
            name = filepath.Join(name, index)
            if info, err := os.Stat(name); err == nil && !info.IsDir() {
                c.File(name)
                return
            }
        }

        fallback := filepath.Join(dir, index)
        if info, err := os.Stat(fallback); err == nil && !info.IsDir() {
            c.File(fallback)
            return
        }

        c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
    }
}
