package catalog

import (
	"net/http"

	"github.com/noah-isme/backend-acara/internal/common"
)

// Handler exposes public catalog endpoints.
type Handler struct {
	Catalog *Catalog
}

// Packages handles GET /api/v1/packages.
func (h *Handler) Packages(w http.ResponseWriter, _ *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Catalog.Packages()})
}

// AddOns handles GET /api/v1/addons.
func (h *Handler) AddOns(w http.ResponseWriter, _ *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Catalog.AddOns()})
}
