package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/repo"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func registerTestUser(t *testing.T, db *gorm.DB, username, email, password string) string {
	t.Helper()
	acct := &AccountService{DB: db, BcryptCost: bcrypt.MinCost}
	u, err := acct.Register(context.Background(), username, email, password)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u.ID
}

func TestAuthService_Verify(t *testing.T) {
	db := newServiceDB(t)
	registerTestUser(t, db, "alice", "alice@example.com", "correct-horse")

	svc := &AuthService{DB: db, Tokens: auth.NewTokenManager("test-secret", time.Hour)}
	ctx := context.Background()

	vu, err := svc.Verify(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if vu.Username != "alice" || vu.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", vu)
	}
	if !vu.AcceptingMessages {
		t.Fatalf("fresh accounts accept messages")
	}

	if _, err := svc.Verify(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown email: got %v, want ErrUserNotFound", err)
	}
	if _, err := svc.Verify(ctx, "alice@example.com", ""); !errors.Is(err, ErrPasswordMissing) {
		t.Fatalf("empty password: got %v, want ErrPasswordMissing", err)
	}
	if _, err := svc.Verify(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("wrong password: got %v, want ErrPasswordMismatch", err)
	}
}

func TestAuthService_Verify_ExactEmailMatch(t *testing.T) {
	db := newServiceDB(t)
	registerTestUser(t, db, "alice", "alice@example.com", "pw-123456")

	svc := &AuthService{DB: db, Tokens: auth.NewTokenManager("test-secret", time.Hour)}

	// Lookup is byte-exact; a case variant is a different identifier.
	if _, err := svc.Verify(context.Background(), "Alice@Example.com", "pw-123456"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("case-variant email: got %v, want ErrUserNotFound", err)
	}
}

func TestAuthService_Login_ClaimsSnapshot(t *testing.T) {
	db := newServiceDB(t)
	userID := registerTestUser(t, db, "alice", "alice@example.com", "correct-horse")

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := &AuthService{DB: db, Tokens: tokens}
	ctx := context.Background()

	tok, vu, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if vu.ID != userID {
		t.Fatalf("identity id = %q, want %q", vu.ID, userID)
	}

	claims, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != vu.ID || claims.Username != vu.Username || claims.AcceptingMessages != vu.AcceptingMessages {
		t.Fatalf("claims %+v do not mirror identity %+v", claims, vu)
	}

	// Flip the live flag: the already-issued token keeps its snapshot.
	acct := &AccountService{DB: db}
	if err := acct.SetAcceptingMessages(ctx, userID, false); err != nil {
		t.Fatalf("SetAcceptingMessages: %v", err)
	}
	stale, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if !stale.AcceptingMessages {
		t.Fatalf("issued token must keep its issue-time claims")
	}

	// A fresh login reflects the change.
	tok2, _, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	fresh, err := tokens.Parse(tok2)
	if err != nil {
		t.Fatalf("Parse fresh: %v", err)
	}
	if fresh.AcceptingMessages {
		t.Fatalf("fresh token should carry the updated flag")
	}
}

func TestAuthService_Login_FailurePropagates(t *testing.T) {
	db := newServiceDB(t)
	registerTestUser(t, db, "alice", "alice@example.com", "correct-horse")

	svc := &AuthService{DB: db, Tokens: auth.NewTokenManager("test-secret", time.Hour)}

	tok, vu, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("got %v, want ErrPasswordMismatch", err)
	}
	if tok != "" || vu != nil {
		t.Fatalf("failed login must not yield a token or identity")
	}
}
