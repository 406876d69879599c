// Package services – AccountService
//
// This file implements AccountService, which owns account registration and
// the accepting-messages preference. Registration checks email uniqueness
// before doing any hash work, hashes the password with bcrypt, and persists
// the new account with an empty inbox and accepting_messages enabled.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AccountService implements the use-cases around account lifecycle.
type AccountService struct {
	// DB is the database handle used for all account operations.
	DB *gorm.DB

	// BcryptCost overrides the hashing cost; zero means bcrypt's default.
	BcryptCost int
}

// Register creates a new account.
//
// Semantics:
//   - Email matching is exact; if an account already exists for the email,
//     ErrEmailTaken is returned without hashing the password.
//   - Otherwise the password is bcrypt-hashed and the account is created with
//     accepting_messages = true and an empty inbox.
//   - Either the write fully succeeds or no record exists; there is no
//     partial state.
//
// The duplicate check and the insert are not a single statement, but the
// unique index on email backs them: a concurrent duplicate insert fails at
// the database and surfaces as ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.email", email)),
	)
	defer span.End()

	exists, err := repo.EmailExists(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, email, hash)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// AcceptingMessages returns the live accepting_messages flag for userID,
// as stored right now (not the possibly stale token claim).
func (s *AccountService) AcceptingMessages(ctx context.Context, userID string) (bool, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "AcceptingMessages",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return u.AcceptingMessages, nil
}

// SetAcceptingMessages updates the live flag. Tokens already issued keep
// their snapshot; the change is only visible in claims after a re-login.
func (s *AccountService) SetAcceptingMessages(ctx context.Context, userID string, accepting bool) error {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "SetAcceptingMessages",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Bool("accepting", accepting),
		),
	)
	defer span.End()

	err := repo.UpdateAcceptingMessages(ctx, s.DB, userID, accepting)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
