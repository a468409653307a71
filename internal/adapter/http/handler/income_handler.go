package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// IncomeService defines the behavior needed by IncomeHandler.
type IncomeService interface {
	CreateIncome(ctx context.Context, input usecase.CreateIncomeInput) (string, error)
	UpdateIncome(ctx context.Context, input usecase.UpdateIncomeInput) (string, error)
	DeleteIncome(ctx context.Context, id string) error
	GetIncome(ctx context.Context, id string) (*usecase.IncomeDTO, error)
	ListIncomes(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.IncomeDTO], error)
}

// IncomeHandler handles income-related HTTP requests.
type IncomeHandler struct {
	incomeUC IncomeService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeUC IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeUC: incomeUC}
}

// Create registers a new income, crediting the account.
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.incomeUC.CreateIncome(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Update corrects an income, re-applying its balance effect.
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.incomeUC.UpdateIncome(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id"), ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// Delete deletes an income, withdrawing the credited amount.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.incomeUC.DeleteIncome(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves an income by ID.
func (h *IncomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	income, err := h.incomeUC.GetIncome(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, income)
}

// List lists incomes with pagination, search and sorting.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.incomeUC.ListIncomes(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
