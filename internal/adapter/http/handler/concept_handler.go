package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// ConceptService defines the behavior needed by ConceptHandler.
type ConceptService interface {
	CreateConcept(ctx context.Context, input usecase.CreateConceptInput) (string, error)
	UpdateConcept(ctx context.Context, input usecase.UpdateConceptInput) (string, error)
	DeleteConcept(ctx context.Context, id string) error
	GetConcept(ctx context.Context, id string) (*usecase.ConceptDTO, error)
	ListConcepts(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ConceptDTO], error)
}

// ConceptHandler handles concept-related HTTP requests.
type ConceptHandler struct {
	conceptUC ConceptService
}

// NewConceptHandler creates a new ConceptHandler.
func NewConceptHandler(conceptUC ConceptService) *ConceptHandler {
	return &ConceptHandler{conceptUC: conceptUC}
}

// Create creates a new concept.
func (h *ConceptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.conceptUC.CreateConcept(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Update updates a concept.
func (h *ConceptHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.conceptUC.UpdateConcept(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id"), ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// Delete deletes a concept.
func (h *ConceptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.conceptUC.DeleteConcept(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a concept by ID.
func (h *ConceptHandler) Get(w http.ResponseWriter, r *http.Request) {
	concept, err := h.conceptUC.GetConcept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, concept)
}

// List lists concepts with pagination, search and sorting.
func (h *ConceptHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.conceptUC.ListConcepts(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
