package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/protein-finder/utils"
)

// SecurityHeaders sets the hardening headers. Responses are not cacheable
// unless the handler marks them so (see utils.RespondJSON).
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", utils.NoStore)

		c.Next()
	}
}
