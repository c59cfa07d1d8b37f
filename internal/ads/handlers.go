package ads

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/customer"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

// BookingLookup resolves bookings for flyer rendering.
type BookingLookup interface {
	Get(id uuid.UUID) (pricing.Booking, error)
}

// Handler serves advertisement flyers for bookings that purchased one.
type Handler struct {
	Bookings  BookingLookup
	Customers *customer.Store
	Renderer  *Renderer
}

// Flyer renders the advertisement flyer as plain text.
func (h *Handler) Flyer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid booking id", nil)
		return
	}
	b, err := h.Bookings.Get(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "booking not found", nil)
		return
	}
	name := ""
	if c, err := h.Customers.Get(b.CustomerID); err == nil {
		name = c.Name
	}
	flyer, err := h.Renderer.RenderFor(b, name)
	if err != nil {
		if errors.Is(err, ErrNotPurchased) {
			common.JSONError(w, http.StatusConflict, common.CodeConflict, err.Error(), nil)
			return
		}
		common.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(flyer))
}
