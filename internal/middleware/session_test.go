package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/SmileCare/internal/auth"
)

const secret = "test-secret"

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func token(t *testing.T, uid, key string) string {
	t.Helper()
	tok, err := auth.MakeToken(uid, key)
	if err != nil {
		t.Fatalf("MakeToken: %v", err)
	}
	return tok
}

func TestSessionAuth(t *testing.T) {
	current := func() string { return "user-1" }

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"no scheme", token(t, "user-1", secret), http.StatusUnauthorized},
		{"basic scheme", "Basic " + token(t, "user-1", secret), http.StatusUnauthorized},
		{"wrong secret", "Bearer " + token(t, "user-1", "other"), http.StatusUnauthorized},
		{"other user", "Bearer " + token(t, "user-2", secret), http.StatusUnauthorized},
		{"ok", "Bearer " + token(t, "user-1", secret), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			h := SessionAuth(secret, current)(dummy)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if dummy.called != (tt.want == http.StatusOK) {
				t.Errorf("next called = %v", dummy.called)
			}
			if dummy.called {
				if got := GetUserIDFromContext(dummy.ctx); got != "user-1" {
					t.Errorf("expected user-1 in context, got %q", got)
				}
			}
		})
	}
}

func TestSessionAuth_LoggedOut(t *testing.T) {
	dummy := &dummyHandler{}
	h := SessionAuth(secret, func() string { return "" })(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1", secret))
	h.ServeHTTP(rec, req)

	if dummy.called || rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	if got := GetUserIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
