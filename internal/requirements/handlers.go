package requirements

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/tmm-digital/quote-api/internal/common"
)

// Handler exposes the requirements form endpoint.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, validate *validator.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

type submitRequest struct {
	ItemID      string `json:"itemId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Description string `json:"description" validate:"required"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
}

// Submit handles POST /api/v1/requirements.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "requirements service not configured", nil)
		return
	}
	var req submitRequest
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
	sub, err := h.service.Record(r.Context(), Submission{
		UserID:      userID,
		ItemID:      req.ItemID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": sub})
}
