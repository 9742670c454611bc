package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"opsledger/config"
	"opsledger/models"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret at call time: the loaded config
// wins, then the raw environment, then a development fallback. Resolving
// lazily matters because config loads after package init.
func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("opsledger-dev")
}

// GenerateActorToken creates a signed JWT carrying the resolved actor
// identity. Token issuance belongs to the auth collaborator; this helper
// exists for that layer and for tests.
func GenerateActorToken(actor models.Actor, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":        actor.ID,
		"name":       actor.Name,
		"role":       string(actor.Role),
		"company_id": actor.CompanyID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ActorFromToken validates a token string and extracts the actor value
// object from its claims, along with the token's expiry so callers can
// bound any caching by it. The core only ever sees the result, never the
// raw token.
func ActorFromToken(tokenString string) (models.Actor, time.Time, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Actor{}, time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, time.Time{}, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Actor{}, time.Time{}, errors.New("token does not contain a valid 'sub' claim")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	companyID, _ := claims["company_id"].(string)
	if role == "" || companyID == "" {
		return models.Actor{}, time.Time{}, errors.New("token does not carry role and tenant claims")
	}

	var expiry time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiry = time.Unix(int64(exp), 0)
	}

	return models.Actor{
		ID:        sub,
		Name:      name,
		Role:      models.Role(role),
		CompanyID: companyID,
	}, expiry, nil
}
