package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (string, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (string, error)
	DeleteAccount(ctx context.Context, id string) error
	GetAccount(ctx context.Context, id string) (*usecase.AccountDTO, error)
	ListAccounts(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.AccountDTO], error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.accountUC.CreateAccount(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Update renames an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.accountUC.UpdateAccount(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id"), ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IDResponse{ID: id})
}

// Delete deletes an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// List lists accounts with pagination, search and sorting.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.accountUC.ListAccounts(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
