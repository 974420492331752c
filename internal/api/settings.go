package api

import (
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/store"
)

// SettingsHandler exposes the handful of user-tunable settings.
type SettingsHandler struct {
	Service *checklist.Service
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref, err := store.GetSetting(r.Context(), h.Service.DB, store.SettingReferenceDate, "today")
	if err != nil {
		serviceError(w, err, "failed to get settings")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"referenceDate": ref})
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReferenceDate string `json:"referenceDate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetReferenceDate(r.Context(), req.ReferenceDate); err != nil {
		serviceError(w, err, "failed to update settings")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"referenceDate": req.ReferenceDate})
}
