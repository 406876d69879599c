// Account and session HTTP handlers.
//
// This file exposes the REST endpoints for registration and login:
//   - POST /auth/register  (create an account)
//   - POST /auth/login     (verify credentials, mint a session token)
//
// Login deliberately collapses every authentication failure — unknown email,
// missing password, wrong password — into one generic 401 body. The internal
// reason is logged server-side; the client must never be able to tell which
// check failed, so responses stay symmetric for registered and unregistered
// emails.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/http/middleware"
	"github.com/inboxd/go-inbox-backend/internal/services"
)

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	// Username is the public handle senders will address messages to.
	Username string `json:"username" binding:"required,min=2,max=32" example:"alice"`
	// Email is the login identifier; must be unique.
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
	// Password is the plaintext credential; only its bcrypt hash is stored.
	Password string `json:"password" binding:"required,min=6" example:"correct horse"`
}

// LoginRequest is the JSON payload for authenticating.
//
// Password carries no binding constraint on purpose: an empty password must
// flow into the verifier's neutral short-circuit and come back as the same
// generic 401 as any other failed login, not as a 400 validation error.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// LoginResponse is the JSON envelope for a successful login. The token is
// also delivered as an HttpOnly session cookie.
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"login successful"`
	Token   string `json:"token"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new account
// @Description Creates an account with accepting-messages enabled and an empty inbox.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object} handlers.Response "Account created"
// @Failure     400  {object} handlers.Response "Invalid payload or email already exists"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		return
	}

	_, err := h.accountSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch err {
		case services.ErrEmailTaken:
			fail(c, http.StatusBadRequest, ErrCodeConflict, "email already exists")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeRegisterFailed, "error registering user", err)
		}
		return
	}

	okMessage(c, http.StatusCreated, "user registered successfully")
}

// Login godoc
// @ID          login
// @Summary     Log in with email and password
// @Description Verifies credentials and returns a signed session token. The token is
// @Description also set as an HttpOnly cookie. All authentication failures return the
// @Description same generic 401 body.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object} handlers.LoginResponse
// @Failure     400  {object} handlers.Response "Missing email"
// @Failure     401  {object} handlers.Response "Authentication failed"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return
	}

	token, _, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case services.ErrUserNotFound, services.ErrPasswordMissing, services.ErrPasswordMismatch:
			// Log the precise reason, answer with the collapsed generic one.
			middleware.LoggerFrom(c).Warn().Err(err).Msg("login rejected")
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "error logging in", err)
		}
		return
	}

	h.setSessionCookie(c, token)
	ok(c, http.StatusOK, LoginResponse{
		Success: true,
		Message: "login successful",
		Token:   token,
	})
}

// setSessionCookie writes the token as an HttpOnly cookie when a cookie name
// is configured.
func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	if h.cookie.Name == "" {
		return
	}
	maxAge := int(h.cookie.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}
