package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/config"
)

func okHandler(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuthAndRBAC(t *testing.T) {
	tm := auth.NewTokenManager("secret", "library-admin", time.Hour)
	am := NewAuthMiddleware(tm)
	rbac := NewRBAC(config.DefaultPolicy())
	h := am.Auth(rbac.Require("logs", config.OpList)(http.HandlerFunc(okHandler)))

	serve := func(authz string) int {
		req := httptest.NewRequest(http.MethodGet, "/logs", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(""))
	assert.Equal(t, http.StatusUnauthorized, serve("Bearer garbage"))

	userTok, _, err := tm.Issue(2, "reader@example.com", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve("Bearer "+userTok))

	adminTok, _, err := tm.Issue(1, "admin@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve("bearer "+adminTok))
}

func TestRequireRoleNeedsUser(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), UserCtx{UserID: 5, Role: "user"}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "6f1c2a4e-8a47-4a53-9a3c-1d1f6d2d0b7e")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "6f1c2a4e-8a47-4a53-9a3c-1d1f6d2d0b7e", seen)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2)(http.HandlerFunc(okHandler))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() { h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
