// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the session materializer for the HTTP transport.
// RequireAuth expands a signed session token back into a request-scoped
// identity view: it reads the token from the Authorization header (Bearer
// scheme) or from the session cookie, validates it, and stores the claims in
// the Gin context. The store is never consulted; the claims are exactly the
// snapshot embedded at issue time.
//
// Any failure (absent, malformed, badly signed, or expired token) aborts the
// request with a single generic 401 — never an internal error, and never a
// hint of which check failed.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/sysutil"
)

const (
	// userIDKey is the Gin context key under which the authenticated user id
	// is stored (also read by the logging middleware).
	userIDKey = "userID"
	// claimsKey is the Gin context key holding the full *auth.Claims.
	claimsKey = "sessionClaims"
)

// RequireAuth returns a middleware that authenticates the request using tm.
// cookieName is the session cookie consulted when no Bearer header is present.
func RequireAuth(tm *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sysutil.FirstNonEmpty(bearerToken(c), cookieToken(c, cookieName))
		if token == "" {
			unauthenticated(c)
			return
		}

		claims, err := tm.Parse(token)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the session claims stored by RequireAuth, or nil when
// the request is unauthenticated.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// cookieToken extracts the token from the session cookie, if any.
func cookieToken(c *gin.Context, cookieName string) string {
	if cookieName == "" {
		return ""
	}
	v, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return v
}

// unauthenticated aborts with the generic 401 envelope. The middleware cannot
// use the handlers package helpers without an import cycle, so it writes the
// same shape directly.
func unauthenticated(c *gin.Context) {
	rid := c.Writer.Header().Get(requestIDHeader)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"request_id": rid,
		"code":       "unauthorized",
		"message":    "not authenticated",
	})
}
