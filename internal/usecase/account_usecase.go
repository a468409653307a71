package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// AccountDTO is the read model for accounts.
type AccountDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID        string
	Name           string
	InitialBalance decimal.Decimal
}

// UpdateAccountInput represents input for renaming an account.
type UpdateAccountInput struct {
	ID      string
	OwnerID string
	Name    string
}

// AccountUseCase instantiates the generic pipelines for accounts. Every
// write also invalidates the dashboard cache, since account balances feed
// the summary.
type AccountUseCase struct {
	deps   Deps
	create *CreatePipeline[CreateAccountInput, domain.Account]
	update *UpdatePipeline[UpdateAccountInput, domain.Account]
	remove *DeletePipeline[domain.Account]
	get    *GetPipeline[AccountDTO]
	list   *ListPipeline[AccountDTO]
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(deps Deps, repo AccountRepository, reader ReadRepository[AccountDTO]) *AccountUseCase {
	return &AccountUseCase{
		deps: deps,
		create: &CreatePipeline[CreateAccountInput, domain.Account]{
			Deps:   deps,
			Entity: domain.EntityAccount,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateAccountInput) error {
				return CheckNameFree(ctx, checker, domain.EntityAccount, cmd.OwnerID, cmd.Name, "")
			},
			Build: func(cmd CreateAccountInput, id string, now time.Time) (*domain.Account, []domain.Event, error) {
				a, err := domain.NewAccount(id, cmd.OwnerID, cmd.Name, cmd.InitialBalance, now)
				return a, nil, err
			},
			InvalidatePrefixes: []string{"dashboard:"},
		},
		update: &UpdatePipeline[UpdateAccountInput, domain.Account]{
			Deps:     deps,
			Entity:   domain.EntityAccount,
			Repo:     repo,
			TargetID: func(cmd UpdateAccountInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateAccountInput) error {
				return CheckNameFree(ctx, checker, domain.EntityAccount, cmd.OwnerID, cmd.Name, cmd.ID)
			},
			Apply: func(a *domain.Account, cmd UpdateAccountInput) ([]domain.Event, error) {
				return nil, a.Update(cmd.Name, time.Now().UTC())
			},
			InvalidatePrefixes: []string{"dashboard:"},
		},
		remove: &DeletePipeline[domain.Account]{
			Deps:               deps,
			Entity:             domain.EntityAccount,
			Repo:               repo,
			InvalidatePrefixes: []string{"dashboard:"},
		},
		get: &GetPipeline[AccountDTO]{
			Deps:   deps,
			Entity: domain.EntityAccount,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[AccountDTO]{
			Deps:   deps,
			Entity: domain.EntityAccount,
			Sort: SortSpec{
				Columns:      map[string]bool{"name": true, "balance": true, "created_at": true},
				Default:      "name",
				DefaultOrder: SortAsc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateAccount creates an account and returns its id.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (string, error) {
	id, err := uc.create.Handle(ctx, input)
	if err != nil {
		return "", err
	}

	uc.deps.observeAccountCreated()

	return id, nil
}

// UpdateAccount renames an account and returns its id.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// DeleteAccount deletes an account by id.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetAccount retrieves an account DTO by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*AccountDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListAccounts lists accounts with pagination, search and sorting.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, q ListQuery) (*Page[AccountDTO], error) {
	return uc.list.Handle(ctx, q)
}
