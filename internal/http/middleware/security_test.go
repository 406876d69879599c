package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func runSecurity(t *testing.T, opt SecurityOptions, mutate func(*http.Request)) http.Header {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(opt))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	h := runSecurity(t, SecurityOptions{}, nil)

	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := h.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
	if got := h.Get("Referrer-Policy"); got != "no-referrer" {
		t.Fatalf("Referrer-Policy = %q", got)
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must be off by default")
	}
	if h.Get("Cache-Control") != "" {
		t.Fatalf("no-store must be off by default")
	}
	if h.Get("Permissions-Policy") != "" {
		t.Fatalf("feature policies must be off by default")
	}
}

func TestSecurityHeaders_NoStoreAndPolicy(t *testing.T) {
	h := runSecurity(t, SecurityOptions{NoStore: true, EnablePolicy: true}, nil)

	if got := h.Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
	if h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("legacy cache headers missing")
	}
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("feature policies missing")
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	// Plain HTTP: never emit HSTS even when enabled.
	h := runSecurity(t, SecurityOptions{EnableHSTS: true}, nil)
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain HTTP")
	}

	// Forwarded HTTPS: emit with the configured max-age.
	h = runSecurity(t, SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}, func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	})
	got := h.Get("Strict-Transport-Security")
	if !strings.HasPrefix(got, "max-age=3600") {
		t.Fatalf("Strict-Transport-Security = %q", got)
	}

	// Unset max-age falls back to the 180-day default.
	h = runSecurity(t, SecurityOptions{EnableHSTS: true}, func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	})
	if got := h.Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=15552000") {
		t.Fatalf("default HSTS = %q", got)
	}
}

func TestSecurityHeaders_ExposesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), SecurityHeaders(SecurityOptions{}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id header missing")
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, requestIDHeader) {
		t.Fatalf("Access-Control-Expose-Headers = %q", got)
	}
}
