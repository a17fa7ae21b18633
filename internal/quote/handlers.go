package quote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/common"
)

// Handler exposes the quote endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

type finalizeRequest struct {
	CartID string `json:"cartId" validate:"required"`
}

// Finalize handles POST /api/v1/quotes.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if h.validate != nil {
		if err := h.validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
	}
	userID, _ := common.UserID(r.Context())
	snap, err := h.service.Finalize(r.Context(), userID, req.CartID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": snap})
}

// Shared handles GET /api/v1/quotes/{id}. No authentication: this is the
// share-link target, and the stored snapshot is returned as-is.
func (h *Handler) Shared(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Shared(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": doc})
}

// History handles GET /api/v1/quotes.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	entries, meta, err := h.service.History(r.Context(), userID, page, perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries, "pagination": meta})
}

// Submit handles POST /api/v1/quotes/{id}/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	if err := h.service.Submit(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": StatusSubmitted}})
}

// Share handles GET /api/v1/quotes/{id}/share.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.Share(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": links})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return
	}
	common.WriteError(w, err)
}
