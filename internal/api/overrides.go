package api

import (
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
	"github.com/ymori/wasuremono/internal/store"
)

// OverridesHandler manages per-date schedule exceptions.
type OverridesHandler struct {
	Service *checklist.Service
}

func validDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.PathValue("date")
	if _, err := schedule.ParseDateKey(date); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return "", false
	}
	return date, true
}

// List handles GET /api/overrides.
func (h *OverridesHandler) List(w http.ResponseWriter, r *http.Request) {
	overrides, err := store.ListOverrides(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to list overrides")
		return
	}
	if overrides == nil {
		overrides = []model.DateOverride{}
	}
	jsonResponse(w, http.StatusOK, overrides)
}

// Get handles GET /api/overrides/{date}. A missing override comes back as
// an empty one; the two are equivalent.
func (h *OverridesHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	override, err := h.Service.Override(r.Context(), date)
	if err != nil {
		serviceError(w, err, "failed to get override")
		return
	}
	if override == nil {
		override = &model.DateOverride{Date: date}
	}
	jsonResponse(w, http.StatusOK, override)
}

// Delete handles DELETE /api/overrides/{date}.
func (h *OverridesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteOverride(r.Context(), date); err != nil {
		serviceError(w, err, "failed to delete override")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "override deleted"})
}

// SetRemoved handles PUT /api/overrides/{date}/removed.
func (h *OverridesHandler) SetRemoved(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	var req struct {
		ItemID  int64 `json:"itemId"`
		Removed bool  `json:"removed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetRemoved(r.Context(), date, req.ItemID, req.Removed); err != nil {
		serviceError(w, err, "failed to update override")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "override updated"})
}

// AddSpecial handles POST /api/overrides/{date}/specials.
func (h *OverridesHandler) AddSpecial(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	special, err := h.Service.AddSpecial(r.Context(), date, req.Name, req.Code)
	if err != nil {
		serviceError(w, err, "failed to add special item")
		return
	}
	jsonResponse(w, http.StatusCreated, special)
}

// RemoveSpecial handles DELETE /api/overrides/{date}/specials/{id}.
func (h *OverridesHandler) RemoveSpecial(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	if err := h.Service.RemoveSpecial(r.Context(), date, r.PathValue("id")); err != nil {
		serviceError(w, err, "failed to remove special item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "special item removed"})
}

// CheckSpecial handles PUT /api/overrides/{date}/specials/{id}/checked.
func (h *OverridesHandler) CheckSpecial(w http.ResponseWriter, r *http.Request) {
	date, ok := validDate(w, r)
	if !ok {
		return
	}

	var req checkedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ToggleSpecial(r.Context(), date, r.PathValue("id"), req.Checked); err != nil {
		serviceError(w, err, "failed to update special item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"checked": req.Checked})
}
