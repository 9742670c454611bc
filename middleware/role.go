package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireGlobalScope restricts an endpoint to platform-level actors. Must
// run after JWTAuthMiddleware.
func RequireGlobalScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authenticated actor"})
			return
		}
		if !actor.IsGlobal() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Platform scope required"})
			return
		}
		c.Next()
	}
}
