package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (string, error)
	UpdateCategory(ctx context.Context, input usecase.UpdateCategoryInput) (string, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (*usecase.CategoryDTO, error)
	ListCategories(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.CategoryDTO], error)
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.categoryUC.CreateCategory(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Update updates a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.categoryUC.UpdateCategory(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id"), ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// Delete deletes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryUC.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryUC.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// List lists categories with pagination, search and sorting.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.categoryUC.ListCategories(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
