// Package web provides the HTTP server, HTML screens and JSON API for amlak.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/evcraddock/amlak/internal/auth"
	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/logging"
	"github.com/evcraddock/amlak/internal/property"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const sessionCleanupInterval = time.Hour

// Options configures a Server.
type Options struct {
	// SecureCookies marks the session cookie HTTPS-only.
	SecureCookies bool
	// CORSOrigins lists origins allowed to call /api. Empty allows any origin.
	CORSOrigins []string
}

// Server is the web UI and JSON API HTTP server.
type Server struct {
	catalog   *catalog.Catalog
	admins    *auth.AdminStore
	sessions  *auth.SessionStore
	limiter   *auth.RateLimiter
	templates *template.Template
	router    chi.Router
}

// NewServer creates a server over the catalog, keeping admin accounts and
// sessions in db.
func NewServer(cat *catalog.Catalog, db *sql.DB, opts Options) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		catalog:   cat,
		admins:    auth.NewAdminStore(db),
		sessions:  auth.NewSessionStore(db, opts.SecureCookies),
		limiter:   auth.NewLoginLimiter(),
		templates: tmpl,
		router:    chi.NewRouter(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := s.router
	r.Use(logging.RequestLogger, middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.Get("/health", s.handleHealth)

	r.Get("/", s.handleHome)
	r.Get("/properties", s.handleProperties)
	r.Get("/property/{id}", s.handleDetail)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContact)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)
	r.With(func(next http.Handler) http.Handler {
		return auth.RequireAdmin(s.sessions, next)
	}).Get("/admin", s.handleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
		r.Get("/properties", s.apiListProperties)
		r.Get("/properties/{id}", s.apiGetProperty)
		r.Get("/featured", s.apiFeatured)
		r.Get("/neighborhoods", s.apiNeighborhoods)
		r.Get("/agency", s.apiAgency)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			apiError(w, "not found", http.StatusNotFound)
		})
	})

	r.NotFound(s.handleNotFound)

	return s, nil
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
		MaxAge:         300,
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully. Expired sessions are purged hourly while running.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", "http://localhost"+srv.Addr, "listings", s.catalog.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.sessions.Cleanup()
			if err != nil {
				slog.Error("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// Template helper functions

var numberPrinter = message.NewPrinter(language.English)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPrice":  property.FormatPrice,
		"formatNumber": tmplFormatNumber,
		"loanEstimate": tmplLoanEstimate,
		"dialURL":      tmplDialURL,
		"sortURL":      tmplSortURL,
		"featuredOnly": tmplFeaturedOnly,
	}
}

// tmplDialURL marks tel: links safe; catalog phones are digits only.
func tmplDialURL(phone string) template.URL {
	return template.URL(property.DialURL(phone))
}

func tmplFormatNumber(n interface{}) string {
	return numberPrinter.Sprintf("%d", n)
}

func tmplLoanEstimate(price int64) string {
	return numberPrinter.Sprintf("%d", property.LoanEstimate(price, property.DefaultDownPayment))
}

// tmplSortURL returns the current query with the sort key replaced.
func tmplSortURL(form url.Values, key property.SortKey) string {
	v := url.Values{}
	for k, vals := range form {
		v[k] = append([]string(nil), vals...)
	}
	if key == property.SortNone {
		v.Del("sort")
	} else {
		v.Set("sort", string(key))
	}
	if len(v) == 0 {
		return "/properties"
	}
	return "/properties?" + v.Encode()
}

func tmplFeaturedOnly(f property.Filter) bool {
	return f.Featured != nil && *f.Featured
}
