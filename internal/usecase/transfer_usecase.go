package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// TransferDTO is the read model for transfers.
type TransferDTO struct {
	ID              string          `json:"id"`
	FromAccountID   string          `json:"from_account_id"`
	FromAccountName string          `json:"from_account_name"`
	ToAccountID     string          `json:"to_account_id"`
	ToAccountName   string          `json:"to_account_name"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	OwnerID       string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
}

// TransferUseCase instantiates the generic pipelines for transfers. The
// TransferRegistered event debits the source and credits the destination
// inside the creation transaction. Transfers have no update path.
type TransferUseCase struct {
	deps   Deps
	create *CreatePipeline[CreateTransferInput, domain.Transfer]
	remove *DeletePipeline[domain.Transfer]
	get    *GetPipeline[TransferDTO]
	list   *ListPipeline[TransferDTO]
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(deps Deps, repo WriteRepository[domain.Transfer], reader ReadRepository[TransferDTO]) *TransferUseCase {
	return &TransferUseCase{
		deps: deps,
		create: &CreatePipeline[CreateTransferInput, domain.Transfer]{
			Deps:   deps,
			Entity: domain.EntityTransfer,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateTransferInput) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityAccount, ID: cmd.FromAccountID},
					Ref{Entity: domain.EntityAccount, ID: cmd.ToAccountID},
				)
			},
			Build: func(cmd CreateTransferInput, id string, now time.Time) (*domain.Transfer, []domain.Event, error) {
				return domain.NewTransfer(id, cmd.OwnerID, cmd.FromAccountID, cmd.ToAccountID,
					cmd.Amount, cmd.Date, cmd.Description, now)
			},
			InvalidatePrefixes: movementPrefixes,
		},
		remove: &DeletePipeline[domain.Transfer]{
			Deps:               deps,
			Entity:             domain.EntityTransfer,
			Repo:               repo,
			MarkDeleted:        func(t *domain.Transfer) []domain.Event { return t.MarkAsDeleted() },
			InvalidatePrefixes: movementPrefixes,
		},
		get: &GetPipeline[TransferDTO]{
			Deps:   deps,
			Entity: domain.EntityTransfer,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[TransferDTO]{
			Deps:   deps,
			Entity: domain.EntityTransfer,
			Sort: SortSpec{
				Columns:      map[string]bool{"date": true, "amount": true, "created_at": true},
				Default:      "date",
				DefaultOrder: SortDesc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateTransfer creates a transfer and returns its id.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (string, error) {
	id, err := uc.create.Handle(ctx, input)
	if err != nil {
		uc.deps.observeMovementError(domain.EntityTransfer, err)
		return "", err
	}

	uc.deps.observeMovement(domain.EntityTransfer, input.Amount)

	return id, nil
}

// UpdateTransfer always fails: moving a transfer is recreate-and-delete.
func (uc *TransferUseCase) UpdateTransfer(ctx context.Context, id string) (string, error) {
	return "", NewValidationf("update is not supported for %s", domain.EntityTransfer)
}

// DeleteTransfer deletes a transfer by id, reversing its balance effect.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetTransfer retrieves a transfer DTO by id.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*TransferDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListTransfers lists transfers with pagination, search and sorting.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, q ListQuery) (*Page[TransferDTO], error) {
	return uc.list.Handle(ctx, q)
}
