package http

import (
	"net/http"
	"strings"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired validates the bearer token, rejects revoked tokens, and
// injects the customer identity into the request context for the service
// layer.
func AuthRequired(tokens service.TokenProvider, blacklist service.TokenBlacklist, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, tokens, blacklist, log)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
			return
		}
		injectIdentity(c, claims)
		c.Next()
	}
}

// AuthOptional injects identity when a valid token is presented and lets
// anonymous requests through. Used by the storefront listing, which renders
// differently per viewer.
func AuthOptional(tokens service.TokenProvider, blacklist service.TokenBlacklist, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := authenticate(c, tokens, blacklist, log); ok {
			injectIdentity(c, claims)
		}
		c.Next()
	}
}

// AdminRequired gates the catalog management routes. It runs after
// AuthRequired and rejects non-admin roles before any request parsing, so a
// non-admin fails with 403 regardless of payload validity.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.RoleFromContext(c.Request.Context())
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("admin access required"))
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens service.TokenProvider, blacklist service.TokenBlacklist, log *zap.Logger) (*service.Claims, bool) {
	raw, ok := extractToken(c)
	if !ok {
		return nil, false
	}
	claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), raw)
	if err != nil {
		log.Debug("token validation failed", zap.Error(err))
		return nil, false
	}
	if blacklist != nil {
		revoked, err := blacklist.IsTokenBlacklisted(c.Request.Context(), claims.JTI)
		if err != nil {
			log.Warn("blacklist lookup failed", zap.Error(err))
			return nil, false
		}
		if revoked {
			return nil, false
		}
	}
	return claims, true
}

func injectIdentity(c *gin.Context, claims *service.Claims) {
	ctx := service.WithCustomerID(c.Request.Context(), claims.CustomerID)
	ctx = service.WithRole(ctx, models.Role(claims.Role))
	c.Request = c.Request.WithContext(ctx)
}

// extractToken reads the session token from the Authorization header, or
// from the access_token cookie for plain browser navigation (the checkout
// success redirect arrives without headers).
func extractToken(c *gin.Context) (string, bool) {
	if authz := c.GetHeader("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			t := strings.TrimSpace(parts[1])
			if t != "" {
				return t, true
			}
		}
		return "", false
	}
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
