package blog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes blog HTTP endpoints.
type Handler struct {
	service      Service
	requireAdmin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAdmin func(http.Handler) http.Handler) *Handler {
	if requireAdmin == nil {
		requireAdmin = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{service: service, requireAdmin: requireAdmin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", h.getBlogs)
		r.With(h.requireAdmin).Put("/", h.saveBlogs)
	})
}

func (h *Handler) getBlogs(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Get(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, payload)
}

func (h *Handler) saveBlogs(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid or missing JSON body"})
		return
	}
	payload, err := h.service.Save(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"title":   payload.Title,
		"ctaText": payload.CTAText,
		"ctaHref": payload.CTAHref,
		"cards":   payload.Cards,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
