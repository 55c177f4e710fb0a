package upload

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the image upload endpoint and serves stored files.
type Handler struct {
	store        *LocalStore
	requireAdmin func(http.Handler) http.Handler
}

func NewHandler(store *LocalStore, requireAdmin func(http.Handler) http.Handler) *Handler {
	if requireAdmin == nil {
		requireAdmin = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{store: store, requireAdmin: requireAdmin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.With(h.requireAdmin).Post("/api/upload-image", h.uploadImage)
	r.Get("/uploads/*", h.serveUpload)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBytes)
	if err := r.ParseMultipartForm(MaxBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "only image files up to 5MB allowed"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "no file"})
		return
	}
	defer file.Close()

	url, err := h.store.Put(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	http.ServeFile(w, r, h.store.BaseDir+"/"+sanitizeName(name))
}

// sanitizeName strips any path component so stored files cannot be escaped.
func sanitizeName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' || name[i] == '\\' {
			return name[i+1:]
		}
	}
	return name
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
