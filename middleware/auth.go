package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"opsledger/models"
	"opsledger/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const actorContextKey = "actor"

// JWTAuthMiddleware validates the bearer token, resolves the actor value
// object from its signed claims and stores it in the request context. If
// an auth cache client is supplied, validated actors are cached by token
// hash so repeat requests skip signature verification.
func JWTAuthMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenHash := utils.HashToken(tokenString)

		if authCache != nil {
			if data, err := authCache.Get(context.Background(), utils.AuthCachePrefix+tokenHash).Result(); err == nil {
				var actor models.Actor
				if err := json.Unmarshal([]byte(data), &actor); err == nil {
					c.Set(actorContextKey, actor)
					c.Next()
					return
				}
			}
		}

		actor, expiry, err := utils.ActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if ttl := actorCacheTTL(expiry); authCache != nil && ttl > 0 {
			if data, err := json.Marshal(actor); err == nil {
				// Best effort: a cache miss just re-validates next time.
				authCache.Set(context.Background(), utils.AuthCachePrefix+tokenHash, data, ttl)
			}
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// actorCacheTTL bounds a cached actor's lifetime by the token's own
// expiry, so a cache hit can never outlive the token that produced it.
func actorCacheTTL(expiry time.Time) time.Duration {
	ttl := utils.AuthCacheTTL
	if expiry.IsZero() {
		return ttl
	}
	if remaining := time.Until(expiry); remaining < ttl {
		ttl = remaining
	}
	return ttl
}

// CurrentActor retrieves the validated actor placed by JWTAuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
