package utils

import "time"

const (
	// AuthCachePrefix namespaces token-hash keys in the auth cache DB.
	AuthCachePrefix = "auth:"
	// AuthCacheTTL bounds how long a validated actor stays cached. Token
	// revocation takes at most this long to propagate.
	AuthCacheTTL = 10 * time.Minute
)
