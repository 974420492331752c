package api

import (
	"net/http"
	"strconv"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/store"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	Service *checklist.Service
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := store.ListCategories(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, cats)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.AddCategory(r.Context(), req.Name)
	if err != nil {
		serviceError(w, err, "failed to create category")
		return
	}
	jsonResponse(w, http.StatusCreated, cat)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		serviceError(w, err, "failed to delete category")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
