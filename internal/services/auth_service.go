// Package services – AuthService
//
// This file implements AuthService, the credential verifier. It orchestrates
// the user repository and the bcrypt hasher to turn (email, password) into
// either a verified identity snapshot or one of three distinct internal
// failures (no such user, missing password, wrong password). Login then maps
// a verified identity into a signed session token via auth.TokenManager.
//
// Observability: public methods are OpenTelemetry-instrumented; spans never
// carry the password.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// VerifiedUser is the identity snapshot produced by a successful credential
// check. It carries exactly the attributes that become session claims.
type VerifiedUser struct {
	ID                string
	Email             string
	Username          string
	AcceptingMessages bool
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// Verify checks (email, password) against the stored account.
//
// Semantics:
//   - Lookup is by exact email match; no record → ErrUserNotFound.
//   - An absent/empty password short-circuits to ErrPasswordMissing before
//     any hash work.
//   - A bcrypt mismatch → ErrPasswordMismatch.
//
// Callers at the transport boundary must collapse all three into one generic
// "authentication failed" response; the distinct values exist for server-side
// logging only.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*VerifiedUser, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Verify",
		trace.WithAttributes(attribute.String("user.email", email)),
	)
	defer span.End()

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if password == "" {
		return nil, ErrPasswordMissing
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrPasswordMismatch
	}

	return &VerifiedUser{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		AcceptingMessages: u.AcceptingMessages,
	}, nil
}

// Login verifies the credentials and, on success, mints a session token whose
// claims snapshot the identity at this moment. The snapshot is immutable for
// the token's lifetime; later account changes are not reflected until a new
// token is issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *VerifiedUser, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Login",
		trace.WithAttributes(attribute.String("user.email", email)),
	)
	defer span.End()

	vu, err := s.Verify(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.Tokens.Issue(vu.ID, vu.Username, vu.AcceptingMessages)
	if err != nil {
		return "", nil, err
	}
	return token, vu, nil
}
