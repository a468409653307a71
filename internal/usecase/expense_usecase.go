package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// ExpenseDTO is the read model for expenses, with all references resolved
// to display names server-side.
type ExpenseDTO struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date"`
	ConceptID         string          `json:"concept_id"`
	ConceptName       string          `json:"concept_name"`
	PayeeName         string          `json:"payee_name"`
	PersonName        string          `json:"person_name"`
	AccountID         string          `json:"account_id"`
	AccountName       string          `json:"account_name"`
	PaymentMethodName string          `json:"payment_method_name"`
	Description       string          `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	OwnerID         string
	Amount          decimal.Decimal
	Date            time.Time
	ConceptID       string
	PayeeID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     string
}

// UpdateExpenseInput represents input for updating an expense.
type UpdateExpenseInput struct {
	ID              string
	OwnerID         string
	Amount          decimal.Decimal
	Date            time.Time
	ConceptID       string
	PayeeID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     string
}

// movementPrefixes are the caches stale after any balance-affecting write.
var movementPrefixes = []string{domain.EntityAccount + ":", "dashboard:"}

// ExpenseUseCase instantiates the generic pipelines for expenses. Creation
// withdraws the amount from the account via the ExpenseRegistered event;
// deletion loads the aggregate and reverses the effect before removing it.
type ExpenseUseCase struct {
	deps   Deps
	create *CreatePipeline[CreateExpenseInput, domain.Expense]
	update *UpdatePipeline[UpdateExpenseInput, domain.Expense]
	remove *DeletePipeline[domain.Expense]
	get    *GetPipeline[ExpenseDTO]
	list   *ListPipeline[ExpenseDTO]
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(deps Deps, repo WriteRepository[domain.Expense], reader ReadRepository[ExpenseDTO]) *ExpenseUseCase {
	return &ExpenseUseCase{
		deps: deps,
		create: &CreatePipeline[CreateExpenseInput, domain.Expense]{
			Deps:   deps,
			Entity: domain.EntityExpense,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateExpenseInput) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityPayee, ID: cmd.PayeeID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Build: func(cmd CreateExpenseInput, id string, now time.Time) (*domain.Expense, []domain.Event, error) {
				return domain.NewExpense(id, cmd.OwnerID, cmd.Amount, cmd.Date,
					cmd.ConceptID, cmd.PayeeID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.Description, now)
			},
			InvalidatePrefixes: movementPrefixes,
		},
		update: &UpdatePipeline[UpdateExpenseInput, domain.Expense]{
			Deps:     deps,
			Entity:   domain.EntityExpense,
			Repo:     repo,
			TargetID: func(cmd UpdateExpenseInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateExpenseInput) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityPayee, ID: cmd.PayeeID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Apply: func(e *domain.Expense, cmd UpdateExpenseInput) ([]domain.Event, error) {
				return e.Update(cmd.Amount, cmd.Date,
					cmd.ConceptID, cmd.PayeeID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.Description)
			},
			InvalidatePrefixes: movementPrefixes,
		},
		remove: &DeletePipeline[domain.Expense]{
			Deps:               deps,
			Entity:             domain.EntityExpense,
			Repo:               repo,
			MarkDeleted:        func(e *domain.Expense) []domain.Event { return e.MarkAsDeleted() },
			InvalidatePrefixes: movementPrefixes,
		},
		get: &GetPipeline[ExpenseDTO]{
			Deps:   deps,
			Entity: domain.EntityExpense,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[ExpenseDTO]{
			Deps:   deps,
			Entity: domain.EntityExpense,
			Sort: SortSpec{
				Columns:      map[string]bool{"date": true, "amount": true, "created_at": true},
				Default:      "date",
				DefaultOrder: SortDesc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateExpense creates an expense and returns its id.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (string, error) {
	id, err := uc.create.Handle(ctx, input)
	if err != nil {
		uc.deps.observeMovementError(domain.EntityExpense, err)
		return "", err
	}

	uc.deps.observeMovement(domain.EntityExpense, input.Amount)

	return id, nil
}

// UpdateExpense updates an expense and returns its id.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// DeleteExpense deletes an expense by id, reversing its balance effect.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetExpense retrieves an expense DTO by id.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*ExpenseDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListExpenses lists expenses with pagination, search and sorting.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, q ListQuery) (*Page[ExpenseDTO], error) {
	return uc.list.Handle(ctx, q)
}
