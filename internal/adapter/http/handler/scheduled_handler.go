package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// ScheduledExpenseService defines the behavior needed by
// ScheduledExpenseHandler. Rules are replaced, never edited in place.
type ScheduledExpenseService interface {
	CreateScheduledExpense(ctx context.Context, input usecase.CreateScheduledExpenseInput) (string, error)
	DeleteScheduledExpense(ctx context.Context, id string) error
	GetScheduledExpense(ctx context.Context, id string) (*usecase.ScheduledExpenseDTO, error)
	ListScheduledExpenses(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ScheduledExpenseDTO], error)
}

// ScheduledIncomeService defines the behavior needed by
// ScheduledIncomeHandler.
type ScheduledIncomeService interface {
	CreateScheduledIncome(ctx context.Context, input usecase.CreateScheduledIncomeInput) (string, error)
	DeleteScheduledIncome(ctx context.Context, id string) error
	GetScheduledIncome(ctx context.Context, id string) (*usecase.ScheduledIncomeDTO, error)
	ListScheduledIncomes(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ScheduledIncomeDTO], error)
}

// ScheduledExpenseHandler handles recurring expense rule requests.
type ScheduledExpenseHandler struct {
	scheduledUC ScheduledExpenseService
}

// NewScheduledExpenseHandler creates a new ScheduledExpenseHandler.
func NewScheduledExpenseHandler(scheduledUC ScheduledExpenseService) *ScheduledExpenseHandler {
	return &ScheduledExpenseHandler{scheduledUC: scheduledUC}
}

// Create creates a recurring expense rule.
func (h *ScheduledExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduledExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.scheduledUC.CreateScheduledExpense(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Delete removes a recurring expense rule and cancels its job.
func (h *ScheduledExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduledUC.DeleteScheduledExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a recurring expense rule by ID.
func (h *ScheduledExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	rule, err := h.scheduledUC.GetScheduledExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// List lists recurring expense rules.
func (h *ScheduledExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.scheduledUC.ListScheduledExpenses(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ScheduledIncomeHandler handles recurring income rule requests.
type ScheduledIncomeHandler struct {
	scheduledUC ScheduledIncomeService
}

// NewScheduledIncomeHandler creates a new ScheduledIncomeHandler.
func NewScheduledIncomeHandler(scheduledUC ScheduledIncomeService) *ScheduledIncomeHandler {
	return &ScheduledIncomeHandler{scheduledUC: scheduledUC}
}

// Create creates a recurring income rule.
func (h *ScheduledIncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduledIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.scheduledUC.CreateScheduledIncome(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Delete removes a recurring income rule and cancels its job.
func (h *ScheduledIncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduledUC.DeleteScheduledIncome(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a recurring income rule by ID.
func (h *ScheduledIncomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	rule, err := h.scheduledUC.GetScheduledIncome(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// List lists recurring income rules.
func (h *ScheduledIncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.scheduledUC.ListScheduledIncomes(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
