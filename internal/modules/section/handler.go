package section

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes section HTTP endpoints.
type Handler struct {
	service      Service
	requireAdmin func(http.Handler) http.Handler
}

// NewHandler creates a section handler. requireAdmin guards the admin save
// route and may be nil in tests.
func NewHandler(service Service, requireAdmin func(http.Handler) http.Handler) *Handler {
	if requireAdmin == nil {
		requireAdmin = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{service: service, requireAdmin: requireAdmin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/{section}", func(r chi.Router) {
		r.Get("/", h.getSection)
		r.With(h.requireAdmin).Put("/", h.saveSection)
		r.Post("/check-qty", h.checkQty)
		r.Post("/order", h.placeOrder)
	})
}

type qtyRequest struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

func (q qtyRequest) cardID() string {
	if q.ID != "" {
		return q.ID
	}
	return q.ProductID
}

func (h *Handler) getSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "section")
	payload, err := h.service.Get(r.Context(), slug)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, payload)
}

func (h *Handler) saveSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "section")
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid or missing JSON body"})
		return
	}
	payload, err := h.service.Save(r.Context(), slug, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"title": payload.Title,
		"cards": payload.Cards,
	})
}

func (h *Handler) checkQty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "section")
	var req qtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "bad JSON"})
		return
	}
	avail, err := h.service.CheckQuantity(r.Context(), slug, req.cardID(), req.Qty)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, avail)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "section")
	var req qtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "bad JSON"})
		return
	}
	remaining, orders, err := h.service.PlaceOrder(r.Context(), slug, req.cardID(), req.Qty)
	if err != nil {
		var oos *OutOfStockError
		switch {
		case errors.As(err, &oos):
			respond(w, http.StatusBadRequest, map[string]interface{}{
				"error":      "Out of stock",
				"qty":        oos.Stock,
				"outOfStock": true,
			})
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": "not found"})
		default:
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"id":     req.cardID(),
		"qty":    remaining,
		"orders": orders,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
