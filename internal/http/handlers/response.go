// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every mutation result and every failure is reported in the same shape, so
// clients can branch on `success` and `code` without inspecting status-specific
// bodies.
//
// Conventions:
//   - All error responses return a Response with success=false and a stable
//     `code` (see errors.go constants).
//   - `fail()` centralizes error formatting and ensures 5xx responses are
//     logged with request context; the client only ever sees the generic
//     message passed in, never the underlying error.
//   - `ok()` writes arbitrary success bodies; `okMessage()` writes the plain
//     success envelope.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "message not found or already deleted"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/http/middleware"
)

// Response is the standard envelope returned by all endpoints for mutation
// results and failures.
//
// Fields:
//   - Success: whether the operation succeeded.
//   - RequestID: optional correlation ID echoed from X-Request-ID, used to
//     correlate server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants);
//     empty on success.
//   - Message: a human-readable description, safe for display to users.
type Response struct {
	Success bool `json:"success"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code,omitempty" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"message deleted"`
}

// fail aborts the request with a structured error envelope.
//
// Server errors (>=500) are logged with the request-scoped logger together
// with the underlying error detail (when provided); the response body carries
// only the generic message.
func fail(c *gin.Context, status int, code, msg string, errs ...error) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := Response{
		Success:   false,
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		for _, err := range errs {
			if err != nil {
				ev = ev.Err(err)
			}
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) call Fail to return consistent error
// envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response with an arbitrary body.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// okMessage writes the plain success envelope.
func okMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{
		Success:   true,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Message:   msg,
	})
}
