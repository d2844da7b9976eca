package middleware

import (
	"strings"

	"recipe-share/helper"
	"recipe-share/models"
	"recipe-share/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// bearerToken returns the token from "Authorization: Bearer <token>", or "".
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireIdentity rejects requests without a valid bearer token.
func RequireIdentity(tokens services.TokenService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			h.SendUnauthorizedError(c)
			c.Abort()
			return
		}
		identity, err := tokens.Validate(c.Request.Context(), raw)
		if err != nil {
			h.SendErrorFrom(c, err)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalIdentity resolves the caller when a token is present. Only a missing
// token means an anonymous caller. A token that is present but fails
// validation (bad signature, expired, revoked by logout, account gone) is
// refused with 401 rather than downgraded to anonymous: a logged-out client
// fetching a public recipe with its old token must be told it is no longer
// authenticated.
func OptionalIdentity(tokens services.TokenService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		identity, err := tokens.Validate(c.Request.Context(), raw)
		if err != nil {
			h.SendErrorFrom(c, err)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the caller set by one of the identity middlewares, or nil.
func GetIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

// RequireLevel lets through callers whose role level is above minLevel.
// It must run after RequireIdentity.
func RequireLevel(minLevel int, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.Requires(GetIdentity(c), minLevel); err != nil {
			h.SendErrorFrom(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
