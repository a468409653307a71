package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// ScheduledExpenseRepository implements usecase.WriteRepository for
// recurring expense rules.
type ScheduledExpenseRepository struct{}

// NewScheduledExpenseRepository creates a new ScheduledExpenseRepository.
func NewScheduledExpenseRepository() *ScheduledExpenseRepository {
	return &ScheduledExpenseRepository{}
}

func (r *ScheduledExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, rule *domain.ScheduledExpense) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO scheduled_expenses
		   (id, owner_id, amount, frequency, next_run, concept_id, payee_id, person_id,
		    account_id, payment_method_id, job_id, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rule.ID, rule.OwnerID, rule.Amount.Decimal(), rule.Frequency.String(), rule.NextRun,
		rule.ConceptID, rule.PayeeID, rule.PersonID,
		rule.AccountID, rule.PaymentMethodID, rule.JobID, rule.Active, rule.CreatedAt)

	return mapWriteError(err, domain.EntityScheduledExpense)
}

func (r *ScheduledExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, rule *domain.ScheduledExpense) error {
	return usecase.NewValidationf("scheduled expenses cannot be updated")
}

func (r *ScheduledExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM scheduled_expenses WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityScheduledExpense)
	}

	return tag.RowsAffected(), nil
}

func (r *ScheduledExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ScheduledExpense, error) {
	var (
		rule      domain.ScheduledExpense
		amount    decimal.Decimal
		frequency string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, amount, frequency, next_run, concept_id, payee_id, person_id,
		        account_id, payment_method_id, job_id, active, created_at
		 FROM scheduled_expenses WHERE id = $1 FOR UPDATE`, id).
		Scan(&rule.ID, &rule.OwnerID, &amount, &frequency, &rule.NextRun,
			&rule.ConceptID, &rule.PayeeID, &rule.PersonID,
			&rule.AccountID, &rule.PaymentMethodID, &rule.JobID, &rule.Active, &rule.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	a, err := domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	rule.Amount = a
	rule.Frequency = domain.Frequency(frequency)

	return &rule, nil
}

// ScheduledIncomeRepository implements usecase.WriteRepository for
// recurring income rules.
type ScheduledIncomeRepository struct{}

// NewScheduledIncomeRepository creates a new ScheduledIncomeRepository.
func NewScheduledIncomeRepository() *ScheduledIncomeRepository {
	return &ScheduledIncomeRepository{}
}

func (r *ScheduledIncomeRepository) Create(ctx context.Context, tx usecase.Transaction, rule *domain.ScheduledIncome) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO scheduled_incomes
		   (id, owner_id, amount, frequency, next_run, concept_id, client_id, person_id,
		    account_id, payment_method_id, job_id, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rule.ID, rule.OwnerID, rule.Amount.Decimal(), rule.Frequency.String(), rule.NextRun,
		rule.ConceptID, rule.ClientID, rule.PersonID,
		rule.AccountID, rule.PaymentMethodID, rule.JobID, rule.Active, rule.CreatedAt)

	return mapWriteError(err, domain.EntityScheduledIncome)
}

func (r *ScheduledIncomeRepository) Update(ctx context.Context, tx usecase.Transaction, rule *domain.ScheduledIncome) error {
	return usecase.NewValidationf("scheduled incomes cannot be updated")
}

func (r *ScheduledIncomeRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM scheduled_incomes WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityScheduledIncome)
	}

	return tag.RowsAffected(), nil
}

func (r *ScheduledIncomeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ScheduledIncome, error) {
	var (
		rule      domain.ScheduledIncome
		amount    decimal.Decimal
		frequency string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, amount, frequency, next_run, concept_id, client_id, person_id,
		        account_id, payment_method_id, job_id, active, created_at
		 FROM scheduled_incomes WHERE id = $1 FOR UPDATE`, id).
		Scan(&rule.ID, &rule.OwnerID, &amount, &frequency, &rule.NextRun,
			&rule.ConceptID, &rule.ClientID, &rule.PersonID,
			&rule.AccountID, &rule.PaymentMethodID, &rule.JobID, &rule.Active, &rule.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	a, err := domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	rule.Amount = a
	rule.Frequency = domain.Frequency(frequency)

	return &rule, nil
}

// ScheduledExpenseReadRepository implements
// usecase.ReadRepository[ScheduledExpenseDTO].
type ScheduledExpenseReadRepository struct {
	pool *pgxpool.Pool
}

// NewScheduledExpenseReadRepository creates a new ScheduledExpenseReadRepository.
func NewScheduledExpenseReadRepository(pool *pgxpool.Pool) *ScheduledExpenseReadRepository {
	return &ScheduledExpenseReadRepository{pool: pool}
}

const scheduledExpenseSelect = `
	SELECT s.id, s.amount, s.frequency, s.next_run,
	       c.name, p.name, a.name,
	       s.job_id, s.active, s.created_at
	FROM scheduled_expenses s
	JOIN concepts c ON c.id = s.concept_id
	JOIN payees p ON p.id = s.payee_id
	JOIN accounts a ON a.id = s.account_id`

func (r *ScheduledExpenseReadRepository) GetByID(ctx context.Context, id string) (*usecase.ScheduledExpenseDTO, error) {
	var dto usecase.ScheduledExpenseDTO

	err := r.pool.QueryRow(ctx, scheduledExpenseSelect+` WHERE s.id = $1`, id).
		Scan(&dto.ID, &dto.Amount, &dto.Frequency, &dto.NextRun,
			&dto.ConceptName, &dto.PayeeName, &dto.AccountName,
			&dto.JobID, &dto.Active, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *ScheduledExpenseReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ScheduledExpenseDTO], error) {
	where, args := filters(q, "s.owner_id", "c.name")

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT count(*) FROM scheduled_expenses s
		 JOIN concepts c ON c.id = s.concept_id %s`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("%s %s %s", scheduledExpenseSelect, where, orderAndPage(q, "s.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.ScheduledExpenseDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.ScheduledExpenseDTO
		if err := rows.Scan(&dto.ID, &dto.Amount, &dto.Frequency, &dto.NextRun,
			&dto.ConceptName, &dto.PayeeName, &dto.AccountName,
			&dto.JobID, &dto.Active, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.ScheduledExpenseDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

// ScheduledIncomeReadRepository implements
// usecase.ReadRepository[ScheduledIncomeDTO].
type ScheduledIncomeReadRepository struct {
	pool *pgxpool.Pool
}

// NewScheduledIncomeReadRepository creates a new ScheduledIncomeReadRepository.
func NewScheduledIncomeReadRepository(pool *pgxpool.Pool) *ScheduledIncomeReadRepository {
	return &ScheduledIncomeReadRepository{pool: pool}
}

const scheduledIncomeSelect = `
	SELECT s.id, s.amount, s.frequency, s.next_run,
	       c.name, cl.name, a.name,
	       s.job_id, s.active, s.created_at
	FROM scheduled_incomes s
	JOIN concepts c ON c.id = s.concept_id
	JOIN clients cl ON cl.id = s.client_id
	JOIN accounts a ON a.id = s.account_id`

func (r *ScheduledIncomeReadRepository) GetByID(ctx context.Context, id string) (*usecase.ScheduledIncomeDTO, error) {
	var dto usecase.ScheduledIncomeDTO

	err := r.pool.QueryRow(ctx, scheduledIncomeSelect+` WHERE s.id = $1`, id).
		Scan(&dto.ID, &dto.Amount, &dto.Frequency, &dto.NextRun,
			&dto.ConceptName, &dto.ClientName, &dto.AccountName,
			&dto.JobID, &dto.Active, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *ScheduledIncomeReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ScheduledIncomeDTO], error) {
	where, args := filters(q, "s.owner_id", "c.name")

	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT count(*) FROM scheduled_incomes s
		 JOIN concepts c ON c.id = s.concept_id %s`, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("%s %s %s", scheduledIncomeSelect, where, orderAndPage(q, "s.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.ScheduledIncomeDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.ScheduledIncomeDTO
		if err := rows.Scan(&dto.ID, &dto.Amount, &dto.Frequency, &dto.NextRun,
			&dto.ConceptName, &dto.ClientName, &dto.AccountName,
			&dto.JobID, &dto.Active, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.ScheduledIncomeDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
