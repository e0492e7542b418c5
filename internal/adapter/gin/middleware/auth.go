package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth returns a middleware that admits only requests carrying a bearer
// token from the configured allow-list. An empty allow-list denies
// everything. Denied requests never reach the handlers.
func Auth(tokens []string, log *zap.Logger) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			allowed[t] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, log, "missing bearer token")
			return
		}
		if _, ok := allowed[token]; !ok {
			unauthorized(c, log, "unknown token")
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, log *zap.Logger, reason string) {
	log.Warn("request denied",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", reason),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
}
