package report

import (
	"net/http"

	"github.com/noah-isme/backend-acara/internal/common"
)

// Handler exposes admin report endpoints.
type Handler struct {
	Svc *Service
}

// Summary returns the aggregate booking report.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	rep, err := h.Svc.Summary(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rep})
}
