package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/auth"
	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/http/middleware"
	"github.com/inboxd/go-inbox-backend/internal/services"
)

//
// Stub services
//

type stubAccountSvc struct {
	registerFn  func(ctx context.Context, username, email, password string) (*domain.User, error)
	acceptingFn func(ctx context.Context, userID string) (bool, error)
	setFn       func(ctx context.Context, userID string, accepting bool) error
}

func (s *stubAccountSvc) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAccountSvc) AcceptingMessages(ctx context.Context, userID string) (bool, error) {
	return s.acceptingFn(ctx, userID)
}

func (s *stubAccountSvc) SetAcceptingMessages(ctx context.Context, userID string, accepting bool) error {
	return s.setFn(ctx, userID, accepting)
}

type stubAuthSvc struct {
	loginFn func(ctx context.Context, email, password string) (string, *services.VerifiedUser, error)
}

func (s *stubAuthSvc) Login(ctx context.Context, email, password string) (string, *services.VerifiedUser, error) {
	return s.loginFn(ctx, email, password)
}

type stubMsgSvc struct {
	deliverFn func(ctx context.Context, recipientUsername, content string) (*domain.Message, error)
	listFn    func(ctx context.Context, userID string, page, pageSize int) ([]domain.Message, int64, error)
	deleteFn  func(ctx context.Context, userID, messageID string) error
}

func (s *stubMsgSvc) Deliver(ctx context.Context, recipientUsername, content string) (*domain.Message, error) {
	return s.deliverFn(ctx, recipientUsername, content)
}

func (s *stubMsgSvc) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Message, int64, error) {
	return s.listFn(ctx, userID, page, pageSize)
}

func (s *stubMsgSvc) Delete(ctx context.Context, userID, messageID string) error {
	return s.deleteFn(ctx, userID, messageID)
}

//
// Harness
//

var testTokens = auth.NewTokenManager("handler-test-secret", time.Hour)

// newTestRouter mounts the full route surface against the given stubs so each
// test only overrides the stub it cares about.
func newTestRouter(acct AccountService, authSvc AuthService, msgs MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(acct, authSvc, msgs, CookieOptions{Name: "inbox_session", TTL: time.Hour})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/u/:username/messages", h.SendMessage)

	authed := r.Group("/", middleware.RequireAuth(testTokens, "inbox_session"))
	authed.GET("/messages", h.ListMessages)
	authed.DELETE("/messages/:id", h.DeleteMessage)
	authed.GET("/accept-messages", h.GetAcceptMessages)
	authed.POST("/accept-messages", h.UpdateAcceptMessages)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func bearerFor(t *testing.T, userID, username string, accepting bool) string {
	t.Helper()
	tok, err := testTokens.Issue(userID, username, accepting)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}
