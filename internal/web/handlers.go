package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/amlak/internal/auth"
	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/property"
)

// page holds what every screen's layout needs.
type page struct {
	Title    string
	Nav      string
	Agency   catalog.Agency
	SignedIn bool
}

type listData struct {
	page
	Featured      []*property.Property
	Properties    []*property.Property
	Total         int
	Criteria      property.Criteria
	Form          url.Values
	Neighborhoods []string
	Types         []property.PropertyType
	Statuses      []property.Status
	SortKeys      []property.SortKey
}

type detailData struct {
	page
	Property    *property.Property
	WhatsAppURL template.URL
	ShareText   string
}

type adminData struct {
	page
	Admin   *auth.Admin
	Summary property.Summary
	Admins  []auth.Admin
	Recent  []*property.Property
}

func (s *Server) newPage(r *http.Request, title, nav string) page {
	_, err := s.sessions.Validate(r)
	return page{
		Title:    title,
		Nav:      nav,
		Agency:   s.catalog.Agency(),
		SignedIn: err == nil,
	}
}

func (s *Server) newListData(r *http.Request, title, nav string) listData {
	q := r.URL.Query()
	crit := criteriaFromQuery(q, priceInMillions)
	props := s.catalog.Query(crit)

	return listData{
		page:          s.newPage(r, title, nav),
		Properties:    props,
		Total:         s.catalog.Len(),
		Criteria:      crit,
		Form:          q,
		Neighborhoods: s.catalog.Neighborhoods(),
		Types:         []property.PropertyType{property.TypeApartment, property.TypeHouse, property.TypeCommercial, property.TypeLand},
		Statuses:      []property.Status{property.StatusForSale, property.StatusForRent, property.StatusSold, property.StatusRented},
		SortKeys:      property.SortKeys,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleHome renders the featured listings followed by all listings
// matching the query parameters.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.newListData(r, "خانه", "home")
	data.Featured = s.catalog.Featured()
	s.render(w, "home.html", data)
}

// handleProperties renders the search screen. HTMX requests get only the
// results partial.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	data := s.newListData(r, "املاک", "properties")

	if r.Header.Get("HX-Request") == "true" {
		s.render(w, "results-partial", data)
		return
	}
	s.render(w, "properties.html", data)
}

// handleDetail renders one listing.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading property: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "detail.html", detailData{
		page:        s.newPage(r, p.Title, "properties"),
		Property:    p,
		WhatsAppURL: template.URL(p.WhatsAppURL()),
		ShareText:   p.ShareText(),
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about.html", s.newPage(r, "درباره ما", "about"))
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contact.html", s.newPage(r, "تماس با ما", "contact"))
}

// handleAdmin renders the dashboard. RequireAdmin guards it.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	admins, err := s.admins.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading admins: %v", err), http.StatusInternalServerError)
		return
	}

	recent := s.catalog.Query(property.Criteria{Sort: property.SortNewest})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.render(w, "admin.html", adminData{
		page:    page{Title: "پنل مدیریت", Nav: "admin", Agency: s.catalog.Agency(), SignedIn: true},
		Admin:   auth.AdminFromContext(r.Context()),
		Summary: s.catalog.Summary(),
		Admins:  admins,
		Recent:  recent,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, "notfound.html", s.newPage(r, "یافت نشد", ""), http.StatusNotFound)
}

// render executes a full page template with a 200 status.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	s.renderStatus(w, name, data, http.StatusOK)
}

// renderStatus buffers the template so a failure can still become a 500.
func (s *Server) renderStatus(w http.ResponseWriter, name string, data interface{}, code int) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "error", err)
	}
}
