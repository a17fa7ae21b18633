package export

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmm-digital/quote-api/internal/common"
)

// Handler exposes the export endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Request handles POST /api/v1/quotes/{id}/export.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	format := r.URL.Query().Get("format")
	if err := h.service.Request(r.Context(), userID, chi.URLParam(r, "id"), format); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"status": "queued"}})
}

// Artifact handles GET /api/v1/quotes/{id}/export. A 202 means the job is
// still rendering.
func (h *Handler) Artifact(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	data, contentType, err := h.service.Artifact(r.Context(), chi.URLParam(r, "id"), format)
	if err != nil {
		if errors.Is(err, ErrArtifactAbsent) {
			common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"status": "pending"}})
			return
		}
		common.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
