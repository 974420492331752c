package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/imaging"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
	"github.com/ymori/wasuremono/internal/store"
)

// ItemsHandler handles recurring-item CRUD endpoints.
type ItemsHandler struct {
	Service *checklist.Service
}

type itemRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Priority string   `json:"priority"`
	Code     string   `json:"code"`
	Memo     string   `json:"memo"`
	Days     []string `json:"days"`
}

func (req *itemRequest) validDays() bool {
	for _, d := range req.Days {
		if !schedule.ValidDay(d) {
			return false
		}
	}
	return true
}

type checkedRequest struct {
	Checked bool `json:"checked"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validDays() {
		jsonError(w, http.StatusBadRequest, "invalid day label")
		return
	}

	item, err := h.Service.AddItem(r.Context(), &model.Item{
		Name:     req.Name,
		Category: req.Category,
		Priority: req.Priority,
		Code:     req.Code,
		Memo:     req.Memo,
		Days:     req.Days,
	})
	if err != nil {
		serviceError(w, err, "failed to create item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.Service.DB, id)
	if err != nil {
		serviceError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validDays() {
		jsonError(w, http.StatusBadRequest, "invalid day label")
		return
	}

	existing, err := store.GetItem(r.Context(), h.Service.DB, id)
	if err != nil {
		serviceError(w, err, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Priority = req.Priority
	existing.Code = req.Code
	existing.Memo = req.Memo
	existing.Days = req.Days
	if err := h.Service.UpdateItem(r.Context(), existing); err != nil {
		serviceError(w, err, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.Service.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// SetChecked handles PUT /api/items/{id}/checked.
func (h *ItemsHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req checkedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ToggleItem(r.Context(), id, req.Checked); err != nil {
		serviceError(w, err, "failed to update checked state")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"checked": req.Checked})
}

// ResetChecks handles POST /api/items/reset.
func (h *ItemsHandler) ResetChecks(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ResetChecks(r.Context()); err != nil {
		serviceError(w, err, "failed to reset checks")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "checks reset"})
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.Service.DB, id)
	if err != nil {
		serviceError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.Service.DB, id, photo.Data, photo.MIME); err != nil {
		serviceError(w, err, "failed to save photo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{id}/photo. With ?thumb=1 a small preview
// is generated from the stored photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), h.Service.DB, id)
	if err != nil {
		serviceError(w, err, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	if r.URL.Query().Get("thumb") == "1" {
		thumb, err := imaging.Thumbnail(bytes.NewReader(data))
		if err != nil {
			serviceError(w, err, "failed to build thumbnail")
			return
		}
		data, mime = thumb.Data, thumb.MIME
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
