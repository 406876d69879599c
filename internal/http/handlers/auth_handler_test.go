package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/services"
)

func TestRegister(t *testing.T) {
	acct := &stubAccountSvc{
		registerFn: func(_ context.Context, username, email, _ string) (*domain.User, error) {
			if username != "alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return &domain.User{ID: "u1", Username: username, Email: email, AcceptingMessages: true}, nil
		},
	}
	r := newTestRouter(acct, &stubAuthSvc{}, &stubMsgSvc{})

	w := doJSON(t, r, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw-123456"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if !resp.Success || resp.Message != "user registered successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestRegister_Validation(t *testing.T) {
	r := newTestRouter(&stubAccountSvc{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called for invalid payloads")
			return nil, nil
		},
	}, &stubAuthSvc{}, &stubMsgSvc{})

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"short username", `{"username":"a","email":"a@example.com","password":"pw-123456"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"pw-123456"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"pw"}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/auth/register", tc.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if resp := decodeResponse(t, w); resp.Code != ErrCodeBadRequest {
				t.Fatalf("code = %q, want %q", resp.Code, ErrCodeBadRequest)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(&stubAccountSvc{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, services.ErrEmailTaken
		},
	}, &stubAuthSvc{}, &stubMsgSvc{})

	w := doJSON(t, r, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw-123456"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != ErrCodeConflict || resp.Message != "email already exists" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestLogin_Success(t *testing.T) {
	authSvc := &stubAuthSvc{
		loginFn: func(_ context.Context, email, password string) (string, *services.VerifiedUser, error) {
			if email != "alice@example.com" || password != "pw-123456" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &services.VerifiedUser{ID: "u1", Username: "alice", AcceptingMessages: true}, nil
		},
	}
	r := newTestRouter(&stubAccountSvc{}, authSvc, &stubMsgSvc{})

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pw-123456"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Token != "signed-token" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	// The token is also delivered as an HttpOnly cookie.
	cookies := w.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "inbox_session" {
			found = true
			if ck.Value != "signed-token" || !ck.HttpOnly {
				t.Fatalf("unexpected cookie: %+v", ck)
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set; cookies: %v", cookies)
	}
}

// TestLogin_UniformFailureBody is the security-sensitive case: unknown email,
// empty password and wrong password must produce byte-identical 401 bodies, so
// a client cannot probe which emails are registered.
func TestLogin_UniformFailureBody(t *testing.T) {
	reasons := map[string]error{
		`{"email":"ghost@example.com","password":"whatever"}`: services.ErrUserNotFound,
		`{"email":"alice@example.com","password":""}`:         services.ErrPasswordMissing,
		`{"email":"alice@example.com"}`:                       services.ErrPasswordMissing,
		`{"email":"alice@example.com","password":"wrong"}`:    services.ErrPasswordMismatch,
	}

	var bodies []string
	for body, reason := range reasons {
		reason := reason
		r := newTestRouter(&stubAccountSvc{}, &stubAuthSvc{
			loginFn: func(context.Context, string, string) (string, *services.VerifiedUser, error) {
				return "", nil, reason
			},
		}, &stubMsgSvc{})

		w := doJSON(t, r, http.MethodPost, "/auth/login", body, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", body, w.Code)
		}
		resp := decodeResponse(t, w)
		if resp.Code != ErrCodeUnauthorized || resp.Message != "invalid email or password" {
			t.Fatalf("%s: leaked detail: %+v", body, resp)
		}
		bodies = append(bodies, w.Body.String())
	}
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("failure bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestLogin_MissingEmail(t *testing.T) {
	r := newTestRouter(&stubAccountSvc{}, &stubAuthSvc{
		loginFn: func(context.Context, string, string) (string, *services.VerifiedUser, error) {
			t.Fatalf("service must not be called without an email")
			return "", nil, nil
		},
	}, &stubMsgSvc{})

	w := doJSON(t, r, http.MethodPost, "/auth/login", `{"password":"pw"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogin_InternalError(t *testing.T) {
	r := newTestRouter(&stubAccountSvc{}, &stubAuthSvc{
		loginFn: func(context.Context, string, string) (string, *services.VerifiedUser, error) {
			return "", nil, errors.New("db down")
		},
	}, &stubMsgSvc{})

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pw"}`, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != ErrCodeInternal {
		t.Fatalf("code = %q, want %q", resp.Code, ErrCodeInternal)
	}
}
