package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/events"
)

// Handler exposes customer registration and profile endpoints.
type Handler struct {
	Store *Store
	Bus   *events.Bus
}

type registerInput struct {
	Name   string `json:"name" validate:"required,min=1,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Member bool   `json:"member"`
}

// Register creates a customer profile.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	c, err := h.Store.Register(in.Name, in.Email, in.Member)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			common.JSONError(w, http.StatusConflict, common.CodeConflict, "email already registered", nil)
			return
		}
		common.WriteError(w, err)
		return
	}
	if h.Bus != nil {
		_, _ = h.Bus.Emit(r.Context(), events.TopicCustomerJoined, c.ID, map[string]any{
			"customerId": c.ID.String(),
			"member":     c.Member,
		})
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": c})
}

// Profile returns the customer together with their current tier.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Store.Get(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "customer not found", nil)
		return
	}
	tier, err := h.Store.Tier(id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c, "tier": tier})
}

// OptIn enables membership for an existing customer.
func (h *Handler) OptIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Store.OptIn(id); err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "customer not found", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"member": true}})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "customerID")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid customer id", nil)
		return uuid.Nil, false
	}
	return id, true
}
