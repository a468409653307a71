package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
// Transfers have no update operation; a wrong transfer is deleted and
// registered again.
type TransferService interface {
	CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (string, error)
	DeleteTransfer(ctx context.Context, id string) error
	GetTransfer(ctx context.Context, id string) (*usecase.TransferDTO, error)
	ListTransfers(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.TransferDTO], error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create registers a transfer, moving funds between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", err.Error())
		return
	}

	id, err := h.transferUC.CreateTransfer(r.Context(), req.ToCreateInput(ownerID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IDResponse{ID: id})
}

// Delete deletes a transfer record.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transferUC.DeleteTransfer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	transfer, err := h.transferUC.GetTransfer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transfer)
}

// List lists transfers with pagination, search and sorting.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.transferUC.ListTransfers(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
