// Handler wiring.
//
// This file declares the service contracts consumed by the HTTP layer and the
// Handlers aggregate that the router mounts. Handlers are transport-thin: they
// validate input, delegate to application services, and translate service
// errors into HTTP responses. They depend on abstract interfaces to keep
// transport concerns separate from business logic.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/http/middleware"
	"github.com/inboxd/go-inbox-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines account lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type AccountService interface {
	// Register creates a new account with accepting-messages enabled.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// AcceptingMessages returns the live accepting-messages flag.
	AcceptingMessages(ctx context.Context, userID string) (bool, error)
	// SetAcceptingMessages updates the live accepting-messages flag.
	SetAcceptingMessages(ctx context.Context, userID string, accepting bool) error
}

// AuthService defines the credential verification and token issuance
// operations consumed by the login endpoint.
type AuthService interface {
	// Login verifies (email, password) and mints a session token on success.
	Login(ctx context.Context, email, password string) (string, *services.VerifiedUser, error)
}

// MessageService defines inbox operations: inbound delivery, listing, and
// ownership-scoped deletion.
type MessageService interface {
	// Deliver appends an anonymous message to the named recipient's inbox.
	Deliver(ctx context.Context, recipientUsername, content string) (*domain.Message, error)
	// ListPage returns a page of the user's inbox and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Message, int64, error)
	// Delete removes a message from the user's own inbox.
	Delete(ctx context.Context, userID, messageID string) error
}

//
// Wiring
//

// CookieOptions configures the session cookie written by the login endpoint.
type CookieOptions struct {
	// Name of the session cookie; empty disables the cookie entirely.
	Name string
	// Secure marks the cookie HTTPS-only.
	Secure bool
	// TTL bounds the cookie lifetime; it should match the token TTL.
	TTL time.Duration
}

// Handlers groups the HTTP endpoints for accounts, sessions, and messages.
type Handlers struct {
	accountSvc AccountService
	authSvc    AuthService
	msgSvc     MessageService
	cookie     CookieOptions
}

// New constructs a Handlers instance bound to the given services.
func New(accountSvc AccountService, authSvc AuthService, msgSvc MessageService, cookie CookieOptions) *Handlers {
	return &Handlers{accountSvc: accountSvc, authSvc: authSvc, msgSvc: msgSvc, cookie: cookie}
}

// sessionClaims returns the claims materialized by the auth middleware.
// Handlers behind RequireAuth can rely on a non-nil result; the nil branch
// exists for safety when a route is mounted without the middleware.
func sessionClaims(c *gin.Context) *auth.Claims {
	return middleware.ClaimsFrom(c)
}
