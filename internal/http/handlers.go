package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"search-system/internal/services/classify"
	"search-system/internal/services/search"
)

// Searcher runs one classified search.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Response, error)
}

const (
	noEventsMessage = "No upcoming events found."
	noPlacesMessage = "No results found."
)

type searchRequest struct {
	Query string `validate:"required,max=500"`
}

// SearchHandler serves the single search endpoint.
type SearchHandler struct {
	searcher Searcher
	validate *validator.Validate
}

func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the search routes
func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/search", h.Search)
}

// Search handles GET /search?q=. The envelope shape determines the
// status: non-empty list 200, not-found message 404, error detail 500.
// A 500 never carries partial results.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{Query: r.URL.Query().Get("q")}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"detail": "q parameter is required and must be at most 500 characters",
		})
		return
	}

	resp, err := h.searcher.Search(r.Context(), req.Query)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("Search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}

	if resp.Empty() {
		message := noPlacesMessage
		if resp.Intent == classify.IntentEvent {
			message = noEventsMessage
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": message})
		return
	}

	if resp.Intent == classify.IntentEvent {
		writeJSON(w, http.StatusOK, resp.Events)
		return
	}
	writeJSON(w, http.StatusOK, resp.Places)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
