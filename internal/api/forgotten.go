package api

import (
	"net/http"
	"strconv"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/forgotten"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
	"github.com/ymori/wasuremono/internal/store"
)

// ForgottenHandler serves forgotten-record history and its statistics.
type ForgottenHandler struct {
	Service *checklist.Service
}

// List handles GET /api/forgotten.
func (h *ForgottenHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to list records")
		return
	}
	if records == nil {
		records = []model.ForgottenRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Save handles PUT /api/forgotten/{date}: replaces the date's record.
func (h *ForgottenHandler) Save(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := schedule.ParseDateKey(date); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}

	var req struct {
		ItemIDs []int64 `json:"forgottenItems"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RecordForgotten(r.Context(), date, req.ItemIDs); err != nil {
		serviceError(w, err, "failed to save record")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "record saved"})
}

// Delete handles DELETE /api/forgotten/{date}.
func (h *ForgottenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRecord(r.Context(), r.PathValue("date")); err != nil {
		serviceError(w, err, "failed to delete record")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "record deleted"})
}

// Prune handles POST /api/forgotten/prune: drops records strictly before the
// given date.
func (h *ForgottenHandler) Prune(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Before string `json:"before"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := schedule.ParseDateKey(req.Before); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid date")
		return
	}

	n, err := h.Service.DeleteRecordsBefore(r.Context(), req.Before)
	if err != nil {
		serviceError(w, err, "failed to prune records")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *ForgottenHandler) load(r *http.Request) ([]model.ForgottenRecord, []model.Item, error) {
	records, err := store.ListRecords(r.Context(), h.Service.DB)
	if err != nil {
		return nil, nil, err
	}
	items, err := store.ListItems(r.Context(), h.Service.DB)
	if err != nil {
		return nil, nil, err
	}
	return records, items, nil
}

// Stats handles GET /api/forgotten/stats.
func (h *ForgottenHandler) Stats(w http.ResponseWriter, r *http.Request) {
	records, items, err := h.load(r)
	if err != nil {
		serviceError(w, err, "failed to compute forgotten stats")
		return
	}
	jsonResponse(w, http.StatusOK, forgotten.ComputeStats(records, items))
}

// ItemStats handles GET /api/forgotten/stats/items, the cheap per-item
// counts for badges.
func (h *ForgottenHandler) ItemStats(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to compute item stats")
		return
	}
	jsonResponse(w, http.StatusOK, forgotten.ComputeItemStats(records))
}

// Top handles GET /api/forgotten/top?n=5.
func (h *ForgottenHandler) Top(w http.ResponseWriter, r *http.Request) {
	n := 5
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			jsonError(w, http.StatusBadRequest, "invalid n")
			return
		}
		n = parsed
	}

	records, items, err := h.load(r)
	if err != nil {
		serviceError(w, err, "failed to compute forgotten stats")
		return
	}
	jsonResponse(w, http.StatusOK, forgotten.ComputeStats(records, items).TopForgotten(n))
}
