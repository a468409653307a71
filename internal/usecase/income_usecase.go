package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// IncomeDTO is the read model for incomes.
type IncomeDTO struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date"`
	ConceptID         string          `json:"concept_id"`
	ConceptName       string          `json:"concept_name"`
	ClientName        string          `json:"client_name"`
	PersonName        string          `json:"person_name"`
	AccountID         string          `json:"account_id"`
	AccountName       string          `json:"account_name"`
	PaymentMethodName string          `json:"payment_method_name"`
	Description       string          `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateIncomeInput represents input for creating an income.
type CreateIncomeInput struct {
	OwnerID         string
	Amount          decimal.Decimal
	Date            time.Time
	ConceptID       string
	ClientID        string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     string
}

// UpdateIncomeInput represents input for updating an income.
type UpdateIncomeInput struct {
	ID              string
	OwnerID         string
	Amount          decimal.Decimal
	Date            time.Time
	ConceptID       string
	ClientID        string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     string
}

// IncomeUseCase instantiates the generic pipelines for incomes. Deletion
// takes the load-first path: MarkAsDeleted raises the event that withdraws
// the previously deposited amount before the row is removed.
type IncomeUseCase struct {
	deps   Deps
	create *CreatePipeline[CreateIncomeInput, domain.Income]
	update *UpdatePipeline[UpdateIncomeInput, domain.Income]
	remove *DeletePipeline[domain.Income]
	get    *GetPipeline[IncomeDTO]
	list   *ListPipeline[IncomeDTO]
}

// NewIncomeUseCase creates a new IncomeUseCase.
func NewIncomeUseCase(deps Deps, repo WriteRepository[domain.Income], reader ReadRepository[IncomeDTO]) *IncomeUseCase {
	return &IncomeUseCase{
		deps: deps,
		create: &CreatePipeline[CreateIncomeInput, domain.Income]{
			Deps:   deps,
			Entity: domain.EntityIncome,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateIncomeInput) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityClient, ID: cmd.ClientID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Build: func(cmd CreateIncomeInput, id string, now time.Time) (*domain.Income, []domain.Event, error) {
				return domain.NewIncome(id, cmd.OwnerID, cmd.Amount, cmd.Date,
					cmd.ConceptID, cmd.ClientID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.Description, now)
			},
			InvalidatePrefixes: movementPrefixes,
		},
		update: &UpdatePipeline[UpdateIncomeInput, domain.Income]{
			Deps:     deps,
			Entity:   domain.EntityIncome,
			Repo:     repo,
			TargetID: func(cmd UpdateIncomeInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateIncomeInput) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityClient, ID: cmd.ClientID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Apply: func(in *domain.Income, cmd UpdateIncomeInput) ([]domain.Event, error) {
				return in.Update(cmd.Amount, cmd.Date,
					cmd.ConceptID, cmd.ClientID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.Description)
			},
			InvalidatePrefixes: movementPrefixes,
		},
		remove: &DeletePipeline[domain.Income]{
			Deps:               deps,
			Entity:             domain.EntityIncome,
			Repo:               repo,
			MarkDeleted:        func(in *domain.Income) []domain.Event { return in.MarkAsDeleted() },
			InvalidatePrefixes: movementPrefixes,
		},
		get: &GetPipeline[IncomeDTO]{
			Deps:   deps,
			Entity: domain.EntityIncome,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[IncomeDTO]{
			Deps:   deps,
			Entity: domain.EntityIncome,
			Sort: SortSpec{
				Columns:      map[string]bool{"date": true, "amount": true, "created_at": true},
				Default:      "date",
				DefaultOrder: SortDesc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateIncome creates an income and returns its id.
func (uc *IncomeUseCase) CreateIncome(ctx context.Context, input CreateIncomeInput) (string, error) {
	id, err := uc.create.Handle(ctx, input)
	if err != nil {
		uc.deps.observeMovementError(domain.EntityIncome, err)
		return "", err
	}

	uc.deps.observeMovement(domain.EntityIncome, input.Amount)

	return id, nil
}

// UpdateIncome updates an income and returns its id.
func (uc *IncomeUseCase) UpdateIncome(ctx context.Context, input UpdateIncomeInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// DeleteIncome deletes an income by id, reversing its balance effect.
func (uc *IncomeUseCase) DeleteIncome(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetIncome retrieves an income DTO by id.
func (uc *IncomeUseCase) GetIncome(ctx context.Context, id string) (*IncomeDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListIncomes lists incomes with pagination, search and sorting.
func (uc *IncomeUseCase) ListIncomes(ctx context.Context, q ListQuery) (*Page[IncomeDTO], error) {
	return uc.list.Handle(ctx, q)
}
