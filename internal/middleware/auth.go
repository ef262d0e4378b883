package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pitchcraft/core/internal/pkg/jwt"
	"github.com/pitchcraft/core/internal/pkg/response"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyJTI    = "token_id"
)

// RevocationChecker reports whether a token id has been revoked by sign-out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth returns a middleware that enforces JWT authentication.
func Auth(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateTokenClaims(c.Request.Context(), revoked, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyJTI, claims.ID)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not
// block the request.
func OptionalAuth(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := ValidateTokenClaims(c.Request.Context(), revoked, extractToken(c)); err == nil && claims.UserID != "" {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyJTI, claims.ID)
		}
		c.Next()
	}
}

// ValidateTokenClaims validates a JWT and rejects revoked sessions.
func ValidateTokenClaims(ctx context.Context, revoked RevocationChecker, rawToken string) (*jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	if revoked != nil && claims.ID != "" {
		isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if isRevoked {
			return nil, errors.New("session revoked")
		}
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentTokenID extracts the authenticated token id (jti) from context.
func CurrentTokenID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyJTI)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
