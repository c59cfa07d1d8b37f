package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/catalog"
	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/customer"
	"github.com/noah-isme/backend-acara/internal/logistics"
	"github.com/noah-isme/backend-acara/internal/payment"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

// Handler exposes the booking lifecycle endpoints.
type Handler struct {
	Svc *Service
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, customer.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, err.Error(), nil)
	case errors.Is(err, pricing.ErrGuestCountExceeded):
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeGuestCountExceeded, err.Error(), nil)
	case errors.Is(err, catalog.ErrUnknownPackage), errors.Is(err, catalog.ErrUnknownAddOn):
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidSelection, err.Error(), nil)
	case errors.Is(err, payment.ErrInvalidMethod):
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidPaymentMethod, err.Error(), nil)
	case errors.Is(err, pricing.ErrInvalidTransition), errors.Is(err, logistics.ErrDateBooked):
		common.JSONError(w, http.StatusConflict, common.CodeConflict, err.Error(), nil)
	case errors.Is(err, logistics.ErrInvalidDate), errors.Is(err, ErrNothingToCheckout):
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, err.Error(), nil)
	default:
		common.WriteError(w, err)
	}
}

func pathBookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid booking id", nil)
		return uuid.Nil, false
	}
	return id, true
}

type createInput struct {
	CustomerID string `json:"customerId" validate:"required,uuid4"`
	EventDate  string `json:"eventDate" validate:"required,datetime=2006-01-02"`
}

// Create opens a draft booking.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	customerID, err := uuid.Parse(in.CustomerID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid customer id", nil)
		return
	}
	b, err := h.Svc.Create(r.Context(), customerID, in.EventDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": b})
}

// Get returns the booking.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBookingID(w, r)
	if !ok {
		return
	}
	b, err := h.Svc.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

type selectPackageInput struct {
	PackageID  string `json:"packageId" validate:"required"`
	GuestCount int    `json:"guestCount" validate:"required,gt=0"`
}

// SelectPackage fixes the package and guest count.
func (h *Handler) SelectPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBookingID(w, r)
	if !ok {
		return
	}
	var in selectPackageInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	b, err := h.Svc.SelectPackage(id, in.PackageID, in.GuestCount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

type selectAddOnInput struct {
	AddOnID string `json:"addOnId" validate:"required"`
}

// SelectAddOn attaches an add-on.
func (h *Handler) SelectAddOn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBookingID(w, r)
	if !ok {
		return
	}
	var in selectAddOnInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	b, err := h.Svc.SelectAddOn(id, in.AddOnID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

type advertisementInput struct {
	Purchase *bool `json:"purchase" validate:"required"`
}

// DecideAdvertisement records the advertisement decision.
func (h *Handler) DecideAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBookingID(w, r)
	if !ok {
		return
	}
	var in advertisementInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	b, err := h.Svc.DecideAdvertisement(id, *in.Purchase)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

// Abandon cancels the booking.
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBookingID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Abandon(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"state": pricing.StateAbandoned}})
}

type checkoutInput struct {
	CustomerID string `json:"customerId" validate:"required,uuid4"`
	CouponCode string `json:"couponCode"`
	Method     string `json:"method" validate:"required"`
}

// Checkout settles every registered booking of the customer.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutInput
	if appErr := common.DecodeAndValidate(r, &in); appErr != nil {
		common.WriteError(w, appErr)
		return
	}
	customerID, err := uuid.Parse(in.CustomerID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid customer id", nil)
		return
	}
	res, err := h.Svc.Checkout(r.Context(), CheckoutInput{
		CustomerID: customerID,
		CouponCode: in.CouponCode,
		Method:     payment.Method(in.Method),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": res})
}

// Quote previews checkout totals without changing state.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customerID, err := uuid.Parse(q.Get("customerId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid customer id", nil)
		return
	}
	totals, err := h.Svc.Quote(customerID, q.Get("coupon"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": totals})
}
