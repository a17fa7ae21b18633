package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/pricing"
)

// Entitlements resolves whether the requesting user may order tier-gated
// items. Anonymous carts never may.
type Entitlements interface {
	AllowAdvanced(ctx context.Context, userID string) (bool, error)
}

// Handler exposes the cart endpoints.
type Handler struct {
	service      *Service
	validate     *validator.Validate
	entitlements Entitlements
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, validate *validator.Validate, entitlements Entitlements) *Handler {
	return &Handler{service: service, validate: validate, entitlements: entitlements}
}

type addItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
	Qty    int    `json:"qty" validate:"min=1"`
}

type updateQtyRequest struct {
	Qty int `json:"qty" validate:"min=0"`
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// Create handles POST /api/v1/carts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserID(r.Context())
	c, err := h.service.Create(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": c})
}

// Get handles GET /api/v1/carts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// AddItem handles POST /api/v1/carts/{id}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	allowed := h.allowAdvanced(r)
	c, err := h.service.AddItem(r.Context(), chi.URLParam(r, "id"), req.ItemID, req.Qty, allowed)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// UpdateItem handles PATCH /api/v1/carts/{id}/items/{itemID}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateQtyRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.UpdateItemQty(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Qty)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// RemoveItem handles DELETE /api/v1/carts/{id}/items/{itemID}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// SetSelection handles PUT /api/v1/carts/{id}/selections/{family}.
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var sel pricing.FamilySelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	sel.Family = pricing.Family(chi.URLParam(r, "family"))
	allowed := h.allowAdvanced(r)
	c, err := h.service.SetSelection(r.Context(), chi.URLParam(r, "id"), sel, allowed)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// ClearSelection handles DELETE /api/v1/carts/{id}/selections/{family}.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	family := pricing.Family(chi.URLParam(r, "family"))
	c, err := h.service.ClearSelection(r.Context(), chi.URLParam(r, "id"), family)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// ApplyPromo handles POST /api/v1/carts/{id}/promo.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req applyPromoRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.ApplyPromo(r.Context(), chi.URLParam(r, "id"), req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// RemovePromo handles DELETE /api/v1/carts/{id}/promo.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemovePromo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// Totals handles GET /api/v1/carts/{id}/totals.
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": totals})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return false
	}
	if h.validate != nil {
		if err := h.validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return false
		}
	}
	return true
}

func (h *Handler) allowAdvanced(r *http.Request) bool {
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" || h.entitlements == nil {
		return false
	}
	allowed, err := h.entitlements.AllowAdvanced(r.Context(), userID)
	if err != nil {
		return false
	}
	return allowed
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.WriteError(w, err)
	}
}
