package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evcraddock/amlak/internal/auth"
)

type loginData struct {
	page
	Username string
	Next     string
	Error    string
}

// handleLoginPage renders the login form, or skips it for a signed-in admin.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeRedirect(r.URL.Query().Get("next"), "/admin")
	if _, err := s.sessions.Validate(r); err == nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginData{
		page: s.newPage(r, "ورود مدیر", "admin"),
		Next: next,
	})
}

// handleLoginSubmit checks the credentials and starts a session.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := loginData{
		page:     s.newPage(r, "ورود مدیر", "admin"),
		Username: strings.TrimSpace(r.FormValue("username")),
		Next:     safeRedirect(r.FormValue("next"), "/admin"),
	}

	ip := auth.ClientIP(r)
	if s.limiter.Limited(ip) {
		slog.Warn("login rate limited", "ip", ip)
		data.Error = "تعداد تلاش‌های ناموفق زیاد است. لطفاً یک دقیقه دیگر دوباره امتحان کنید."
		s.renderStatus(w, "login.html", data, http.StatusTooManyRequests)
		return
	}

	admin, err := s.admins.Authenticate(data.Username, r.FormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.limiter.RecordFailure(ip)
		slog.Warn("login failed", "username", data.Username, "ip", ip)
		data.Error = "نام کاربری یا رمز عبور اشتباه است."
		s.renderStatus(w, "login.html", data, http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.Error("authenticating admin", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.limiter.Reset(ip)
	if err := s.sessions.Create(w, admin.ID); err != nil {
		slog.Error("creating session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("admin signed in", "username", admin.Username)
	http.Redirect(w, r, data.Next, http.StatusSeeOther)
}

// handleLogout destroys the session and returns to the home screen.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(w, r); err != nil {
		slog.Error("destroying session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
