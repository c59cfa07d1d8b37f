package logistics

import (
	"net/http"

	"github.com/noah-isme/backend-acara/internal/common"
)

// Handler exposes venue availability endpoints.
type Handler struct {
	Board *Board
}

// Reserved lists all reserved dates.
func (h *Handler) Reserved(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Board.ReservedDates()})
}

// Availability reports whether a given date is free.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if err := ValidateDate(date); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "date must be formatted YYYY-MM-DD", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"date":      date,
		"available": h.Board.Available(date),
	}})
}
