package server

import (
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/varejo/internal/config"
)

// AllowedHosts rejects requests whose Host header is not in ALLOWED_HOSTS.
// Health probes are always let through.
func AllowedHosts(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		if !cfg.HostAllowed(c.Request.Host) {
			AbortWithError(c, ErrDisallowedHost)
			return
		}
		c.Next()
	}
}
