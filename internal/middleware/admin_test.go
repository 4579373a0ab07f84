package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elrefaeey/padell/internal/auth"
)

func adminProbe(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuthRejectsWithoutCredentials(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), AccessTTL: time.Minute, RefreshTTL: time.Hour, Issuer: "padell"}
	mw := AdminAuth("", manager)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	rec := adminProbe(t, mw, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthAcceptsAPIKey(t *testing.T) {
	mw := AdminAuth("super-key", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req.Header.Set("X-Admin-Key", "super-key")
	rec := adminProbe(t, mw, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAdminAuthAcceptsAdminCookie(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), AccessTTL: time.Minute, RefreshTTL: time.Hour, Issuer: "padell"}
	token, err := manager.NewAccessToken("admin@vippadel.com", "admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	mw := AdminAuth("", manager)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	rec := adminProbe(t, mw, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), AccessTTL: time.Minute, RefreshTTL: time.Hour, Issuer: "padell"}
	token, err := manager.NewAccessToken("visitor@vippadel.com", "visitor")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	mw := AdminAuth("", manager)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	rec := adminProbe(t, mw, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	mw := AdminAuth("", nil)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	rec := adminProbe(t, mw, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
