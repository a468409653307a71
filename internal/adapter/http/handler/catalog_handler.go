package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// NamedService defines the behavior shared by the catalog usecases
// (clients, payees, persons, payment methods).
type NamedService interface {
	Create(ctx context.Context, input usecase.CreateNamedInput) (string, error)
	Update(ctx context.Context, input usecase.UpdateNamedInput) (string, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*usecase.NamedDTO, error)
	List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.NamedDTO], error)
}

// NamedHandler serves one catalog entity. The same handler type backs
// all four catalog routes, each wired to its own usecase.
type NamedHandler struct {
	service NamedService
}

// NewNamedHandler creates a new NamedHandler.
func NewNamedHandler(service NamedService) *NamedHandler {
	return &NamedHandler{service: service}
}

// Create creates a catalog entity.
func (h *NamedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.service.Create(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Update renames a catalog entity.
func (h *NamedHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.NamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.service.Update(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id"), ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// Delete deletes a catalog entity.
func (h *NamedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a catalog entity by ID.
func (h *NamedHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

// List lists catalog entities with pagination, search and sorting.
func (h *NamedHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
