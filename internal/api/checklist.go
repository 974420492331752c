package api

import (
	"errors"
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/schedule"
)

// ChecklistHandler serves the resolved per-date checklist views.
type ChecklistHandler struct {
	Service *checklist.Service
}

func emptyIfNil(items []schedule.EffectiveItem) []schedule.EffectiveItem {
	if items == nil {
		return []schedule.EffectiveItem{}
	}
	return items
}

// Today handles GET /api/checklist/today.
func (h *ChecklistHandler) Today(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.TodayItems(r.Context())
	if err != nil {
		serviceError(w, err, "failed to resolve checklist")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(items))
}

// Tomorrow handles GET /api/checklist/tomorrow.
func (h *ChecklistHandler) Tomorrow(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.TomorrowItems(r.Context())
	if err != nil {
		serviceError(w, err, "failed to resolve checklist")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(items))
}

// ForDate handles GET /api/checklist/{date}.
func (h *ChecklistHandler) ForDate(w http.ResponseWriter, r *http.Request) {
	t, err := schedule.ParseDateKey(r.PathValue("date"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}

	items, err := h.Service.ItemsForDate(r.Context(), t)
	if err != nil {
		serviceError(w, err, "failed to resolve checklist")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(items))
}

// Stats handles GET /api/checklist/{date}/stats.
func (h *ChecklistHandler) Stats(w http.ResponseWriter, r *http.Request) {
	t, err := schedule.ParseDateKey(r.PathValue("date"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}

	stats, err := h.Service.StatsForDate(r.Context(), t)
	if err != nil {
		serviceError(w, err, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// CheckAll handles POST /api/checklist/{date}/checkall. Best-effort: a
// partial failure still checks what it can and reports the failure count.
func (h *ChecklistHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	t, err := schedule.ParseDateKey(r.PathValue("date"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}

	var req checkedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.CheckAllForDate(r.Context(), t, req.Checked); err != nil {
		var partial *checklist.PartialBulkError
		if errors.As(err, &partial) {
			jsonResponse(w, http.StatusOK, map[string]any{
				"message": "completed with failures",
				"failed":  partial.Failed,
			})
			return
		}
		serviceError(w, err, "failed to check all items")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "done"})
}

// DetailedStats handles GET /api/stats.
func (h *ChecklistHandler) DetailedStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DetailedStats(r.Context())
	if err != nil {
		serviceError(w, err, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
