package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// ScheduledExpenseDTO is the read model for scheduled expenses.
type ScheduledExpenseDTO struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	NextRun     time.Time       `json:"next_run"`
	ConceptName string          `json:"concept_name"`
	PayeeName   string          `json:"payee_name"`
	AccountName string          `json:"account_name"`
	JobID       string          `json:"job_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ScheduledIncomeDTO is the read model for scheduled incomes.
type ScheduledIncomeDTO struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	NextRun     time.Time       `json:"next_run"`
	ConceptName string          `json:"concept_name"`
	ClientName  string          `json:"client_name"`
	AccountName string          `json:"account_name"`
	JobID       string          `json:"job_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateScheduledExpenseInput represents input for creating a recurring
// expense rule.
type CreateScheduledExpenseInput struct {
	OwnerID         string
	Amount          decimal.Decimal
	Frequency       string
	NextRun         time.Time
	ConceptID       string
	PayeeID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
}

// CreateScheduledIncomeInput represents input for creating a recurring
// income rule.
type CreateScheduledIncomeInput struct {
	OwnerID         string
	Amount          decimal.Decimal
	Frequency       string
	NextRun         time.Time
	ConceptID       string
	ClientID        string
	PersonID        string
	AccountID       string
	PaymentMethodID string
}

type createScheduledExpenseCmd struct {
	CreateScheduledExpenseInput
	JobID string
}

type createScheduledIncomeCmd struct {
	CreateScheduledIncomeInput
	JobID string
}

// ScheduledExpenseUseCase handles recurring expense rules. The core only
// generates the job id and persists schedule metadata; recurring execution
// belongs to the scheduler collaborator. There is no update path.
type ScheduledExpenseUseCase struct {
	scheduler JobScheduler
	create    *CreatePipeline[createScheduledExpenseCmd, domain.ScheduledExpense]
	remove    *DeletePipeline[domain.ScheduledExpense]
	get       *GetPipeline[ScheduledExpenseDTO]
	list      *ListPipeline[ScheduledExpenseDTO]
}

// NewScheduledExpenseUseCase creates a new ScheduledExpenseUseCase.
func NewScheduledExpenseUseCase(deps Deps, scheduler JobScheduler, repo WriteRepository[domain.ScheduledExpense], reader ReadRepository[ScheduledExpenseDTO]) *ScheduledExpenseUseCase {
	return &ScheduledExpenseUseCase{
		scheduler: scheduler,
		create: &CreatePipeline[createScheduledExpenseCmd, domain.ScheduledExpense]{
			Deps:   deps,
			Entity: domain.EntityScheduledExpense,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd createScheduledExpenseCmd) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityPayee, ID: cmd.PayeeID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Build: func(cmd createScheduledExpenseCmd, id string, now time.Time) (*domain.ScheduledExpense, []domain.Event, error) {
				se, err := domain.NewScheduledExpense(id, cmd.OwnerID, cmd.Amount, cmd.Frequency, cmd.NextRun,
					cmd.ConceptID, cmd.PayeeID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.JobID, now)
				return se, nil, err
			},
		},
		remove: &DeletePipeline[domain.ScheduledExpense]{
			Deps:   deps,
			Entity: domain.EntityScheduledExpense,
			Repo:   repo,
			AfterDelete: func(ctx context.Context, se *domain.ScheduledExpense) {
				if err := scheduler.Cancel(ctx, se.JobID); err != nil {
					log.Warn().Err(err).Str("job_id", se.JobID).Msg("failed to cancel recurring job")
				}
			},
		},
		get: &GetPipeline[ScheduledExpenseDTO]{
			Deps:   deps,
			Entity: domain.EntityScheduledExpense,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[ScheduledExpenseDTO]{
			Deps:   deps,
			Entity: domain.EntityScheduledExpense,
			Sort: SortSpec{
				Columns:      map[string]bool{"next_run": true, "amount": true, "created_at": true},
				Default:      "next_run",
				DefaultOrder: SortDesc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateScheduledExpense creates a recurring expense rule and returns its id.
func (uc *ScheduledExpenseUseCase) CreateScheduledExpense(ctx context.Context, input CreateScheduledExpenseInput) (string, error) {
	return uc.create.Handle(ctx, createScheduledExpenseCmd{
		CreateScheduledExpenseInput: input,
		JobID:                       uc.scheduler.GenerateJobID(),
	})
}

// UpdateScheduledExpense always fails: rescheduling is recreate-and-delete.
func (uc *ScheduledExpenseUseCase) UpdateScheduledExpense(ctx context.Context, id string) (string, error) {
	return "", NewValidationf("update is not supported for %s", domain.EntityScheduledExpense)
}

// DeleteScheduledExpense deletes a rule and cancels its recurring job.
func (uc *ScheduledExpenseUseCase) DeleteScheduledExpense(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetScheduledExpense retrieves a rule DTO by id.
func (uc *ScheduledExpenseUseCase) GetScheduledExpense(ctx context.Context, id string) (*ScheduledExpenseDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListScheduledExpenses lists rules with pagination, search and sorting.
func (uc *ScheduledExpenseUseCase) ListScheduledExpenses(ctx context.Context, q ListQuery) (*Page[ScheduledExpenseDTO], error) {
	return uc.list.Handle(ctx, q)
}

// ScheduledIncomeUseCase mirrors ScheduledExpenseUseCase for incomes.
type ScheduledIncomeUseCase struct {
	scheduler JobScheduler
	create    *CreatePipeline[createScheduledIncomeCmd, domain.ScheduledIncome]
	remove    *DeletePipeline[domain.ScheduledIncome]
	get       *GetPipeline[ScheduledIncomeDTO]
	list      *ListPipeline[ScheduledIncomeDTO]
}

// NewScheduledIncomeUseCase creates a new ScheduledIncomeUseCase.
func NewScheduledIncomeUseCase(deps Deps, scheduler JobScheduler, repo WriteRepository[domain.ScheduledIncome], reader ReadRepository[ScheduledIncomeDTO]) *ScheduledIncomeUseCase {
	return &ScheduledIncomeUseCase{
		scheduler: scheduler,
		create: &CreatePipeline[createScheduledIncomeCmd, domain.ScheduledIncome]{
			Deps:   deps,
			Entity: domain.EntityScheduledIncome,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd createScheduledIncomeCmd) error {
				return CheckRefs(ctx, checker,
					Ref{Entity: domain.EntityConcept, ID: cmd.ConceptID},
					Ref{Entity: domain.EntityClient, ID: cmd.ClientID},
					Ref{Entity: domain.EntityPerson, ID: cmd.PersonID},
					Ref{Entity: domain.EntityAccount, ID: cmd.AccountID},
					Ref{Entity: domain.EntityPaymentMethod, ID: cmd.PaymentMethodID},
				)
			},
			Build: func(cmd createScheduledIncomeCmd, id string, now time.Time) (*domain.ScheduledIncome, []domain.Event, error) {
				si, err := domain.NewScheduledIncome(id, cmd.OwnerID, cmd.Amount, cmd.Frequency, cmd.NextRun,
					cmd.ConceptID, cmd.ClientID, cmd.PersonID, cmd.AccountID, cmd.PaymentMethodID,
					cmd.JobID, now)
				return si, nil, err
			},
		},
		remove: &DeletePipeline[domain.ScheduledIncome]{
			Deps:   deps,
			Entity: domain.EntityScheduledIncome,
			Repo:   repo,
			AfterDelete: func(ctx context.Context, si *domain.ScheduledIncome) {
				if err := scheduler.Cancel(ctx, si.JobID); err != nil {
					log.Warn().Err(err).Str("job_id", si.JobID).Msg("failed to cancel recurring job")
				}
			},
		},
		get: &GetPipeline[ScheduledIncomeDTO]{
			Deps:   deps,
			Entity: domain.EntityScheduledIncome,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[ScheduledIncomeDTO]{
			Deps:   deps,
			Entity: domain.EntityScheduledIncome,
			Sort: SortSpec{
				Columns:      map[string]bool{"next_run": true, "amount": true, "created_at": true},
				Default:      "next_run",
				DefaultOrder: SortDesc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateScheduledIncome creates a recurring income rule and returns its id.
func (uc *ScheduledIncomeUseCase) CreateScheduledIncome(ctx context.Context, input CreateScheduledIncomeInput) (string, error) {
	return uc.create.Handle(ctx, createScheduledIncomeCmd{
		CreateScheduledIncomeInput: input,
		JobID:                      uc.scheduler.GenerateJobID(),
	})
}

// UpdateScheduledIncome always fails: rescheduling is recreate-and-delete.
func (uc *ScheduledIncomeUseCase) UpdateScheduledIncome(ctx context.Context, id string) (string, error) {
	return "", NewValidationf("update is not supported for %s", domain.EntityScheduledIncome)
}

// DeleteScheduledIncome deletes a rule and cancels its recurring job.
func (uc *ScheduledIncomeUseCase) DeleteScheduledIncome(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetScheduledIncome retrieves a rule DTO by id.
func (uc *ScheduledIncomeUseCase) GetScheduledIncome(ctx context.Context, id string) (*ScheduledIncomeDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListScheduledIncomes lists rules with pagination, search and sorting.
func (uc *ScheduledIncomeUseCase) ListScheduledIncomes(ctx context.Context, q ListQuery) (*Page[ScheduledIncomeDTO], error) {
	return uc.list.Handle(ctx, q)
}
