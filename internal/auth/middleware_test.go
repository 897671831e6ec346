package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequireAdminRedirectsUnauthenticated(t *testing.T) {
	store, _ := testStores(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireAdmin(store, inner)

	r := httptest.NewRequest("GET", "/admin?tab=stats", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	want := "/login?next=%2Fadmin%3Ftab%3Dstats"
	if w.Header().Get("Location") != want {
		t.Errorf("location = %q, want %q", w.Header().Get("Location"), want)
	}
}

func TestRequireAdminAllowsAuthenticated(t *testing.T) {
	store, admins := testStores(t)
	admin := addAdmin(t, admins, "hesam")

	w := httptest.NewRecorder()
	if err := store.Create(w, admin.ID); err != nil {
		t.Fatalf("create session: %v", err)
	}
	sessionCookie := findCookie(t, w)

	var seen *Admin
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireAdmin(store, inner)

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(sessionCookie)
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r)

	if w2.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w2.Code, http.StatusOK)
	}
	if seen == nil || seen.Username != "hesam" {
		t.Errorf("admin in context = %+v", seen)
	}
}

func TestAdminFromContextEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if AdminFromContext(r.Context()) != nil {
		t.Error("expected nil admin without middleware")
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	rl := NewLoginLimiter()
	rl.now = func() time.Time { return now }

	for i := 1; i < rateLimitMaxFail; i++ {
		if rl.RecordFailure("10.0.0.1") {
			t.Fatalf("limited after %d failures", i)
		}
	}
	if rl.Limited("10.0.0.1") {
		t.Fatal("should not be limited before the tenth failure")
	}
	if !rl.RecordFailure("10.0.0.1") {
		t.Fatal("tenth failure should hit the limit")
	}
	if !rl.Limited("10.0.0.1") {
		t.Error("expected limited")
	}
	if rl.Limited("10.0.0.2") {
		t.Error("other IPs should not be limited")
	}

	now = now.Add(rateLimitWindow + time.Second)
	if rl.Limited("10.0.0.1") {
		t.Error("limit should expire after the window")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewLoginLimiter()
	for i := 0; i < rateLimitMaxFail; i++ {
		rl.RecordFailure("10.0.0.1")
	}
	rl.Reset("10.0.0.1")
	if rl.Limited("10.0.0.1") {
		t.Error("reset should clear failures")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"unix-socket", "unix-socket"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
