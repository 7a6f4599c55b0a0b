package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/router"
)

// routeSummary is one entry of the route listing.
type routeSummary struct {
	Route      string   `json:"route"`
	Title      string   `json:"title"`
	Breadcrumb []string `json:"breadcrumb"`
}

type errorResponse struct {
	Error  string         `json:"error"`
	Notice *router.Notice `json:"notice,omitempty"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	records := s.table.Records()
	out := make([]routeSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, routeSummary{Route: rec.Route, Title: rec.Title, Breadcrumb: rec.Breadcrumb})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	route := chi.URLParam(r, "route")
	rec, ok := s.table.Get(route)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: router.ErrRouteNotFound.Error() + ": " + route})
		return
	}

	view, err := s.renderer.Render(rec)
	if err != nil {
		s.logger.Error("render failed", zap.String("route", route), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: router.DefaultFallbackMessage})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter q is required"})
		return
	}
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	results := router.Search(s.table, query)
	if len(results) == 0 {
		notice := router.NoResultsNotice(s.table, query)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: router.ErrNoSearchResults.Error(), Notice: &notice})
		return
	}

	if all {
		writeJSON(w, http.StatusOK, map[string][]router.Result{"results": results})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"route": results[0].Route})
}

// statusFor maps router errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, router.ErrRouteNotFound), errors.Is(err, router.ErrNoSearchResults):
		return http.StatusNotFound
	case errors.Is(err, router.ErrNavigationBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
