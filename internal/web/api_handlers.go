package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/amlak/internal/catalog"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// apiListProperties returns the listings matching the query parameters.
// Prices are in toman.
func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	crit := criteriaFromQuery(r.URL.Query(), priceInToman)
	apiJSON(w, s.catalog.Query(crit), http.StatusOK)
}

// apiGetProperty returns a single listing.
func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("loading property: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiFeatured returns the featured listings in catalog order.
func (s *Server) apiFeatured(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.catalog.Featured(), http.StatusOK)
}

// apiNeighborhoods returns the distinct neighborhood names.
func (s *Server) apiNeighborhoods(w http.ResponseWriter, r *http.Request) {
	names := s.catalog.Neighborhoods()
	if names == nil {
		names = []string{}
	}
	apiJSON(w, names, http.StatusOK)
}

// apiAgency returns the agency contact details.
func (s *Server) apiAgency(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.catalog.Agency(), http.StatusOK)
}
