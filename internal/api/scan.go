package api

import (
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
)

// ScanHandler maps decoded barcodes to items. Decoding happens in the
// browser; the server only does the lookup.
type ScanHandler struct {
	Service *checklist.Service
}

// Lookup handles POST /api/scan. An unknown code is not an error: the
// client offers to create an item with the code pre-filled.
func (h *ScanHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		jsonError(w, http.StatusBadRequest, "code required")
		return
	}

	item, err := h.Service.LookupCode(r.Context(), req.Code)
	if err != nil {
		serviceError(w, err, "failed to look up code")
		return
	}
	if item == nil {
		jsonResponse(w, http.StatusOK, map[string]any{"found": false, "code": req.Code})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"found": true, "item": item})
}
