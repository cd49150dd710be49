package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shuttlesched/config"
)

// OriginCheckMiddleware rejects requests whose Origin header is not in the
// configured allow-list. It is a no-op when origin checking is disabled.
func OriginCheckMiddleware(cfg config.Config) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, o := range cfg.AllowedOrigins() {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		if !cfg.EnableOriginCheck {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; !ok {
			zap.L().Warn("rejected request from disallowed origin", zap.String("origin", origin))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "origin not allowed"})
			return
		}
		c.Next()
	}
}
