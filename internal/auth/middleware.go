package auth

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

type ctxKey struct{}

// AdminFromContext returns the admin stored by RequireAdmin, or nil.
func AdminFromContext(ctx context.Context) *Admin {
	a, _ := ctx.Value(ctxKey{}).(*Admin)
	return a
}

// RequireAdmin is middleware that redirects requests without a valid
// session to the login page, remembering the requested path.
func RequireAdmin(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := sessions.Validate(r)
		if err != nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

const (
	rateLimitWindow  = 1 * time.Minute
	rateLimitMaxFail = 10
)

// RateLimiter tracks failed login attempts per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	window   time.Duration
	max      int
	now      func() time.Time
}

// NewLoginLimiter allows 10 failed logins per IP per minute.
func NewLoginLimiter() *RateLimiter {
	return &RateLimiter{
		attempts: make(map[string][]time.Time),
		window:   rateLimitWindow,
		max:      rateLimitMaxFail,
		now:      time.Now,
	}
}

// Limited reports whether ip has used up its failures for the window.
func (rl *RateLimiter) Limited(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.prune(ip)) >= rl.max
}

// RecordFailure records a failed attempt and returns true if ip is now limited.
func (rl *RateLimiter) RecordFailure(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := append(rl.prune(ip), rl.now())
	rl.attempts[ip] = valid

	return len(valid) >= rl.max
}

// Reset forgets the failures of ip, after a successful login.
func (rl *RateLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, ip)
}

// prune drops attempts outside the window. Callers hold mu.
func (rl *RateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	valid := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
