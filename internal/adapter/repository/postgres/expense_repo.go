package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// ExpenseRepository implements usecase.WriteRepository for expenses.
type ExpenseRepository struct{}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{}
}

func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO expenses
		   (id, owner_id, amount, date, concept_id, payee_id, person_id,
		    account_id, payment_method_id, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		expense.ID, expense.OwnerID, expense.Amount.Decimal(), expense.Date,
		expense.ConceptID, expense.PayeeID, expense.PersonID,
		expense.AccountID, expense.PaymentMethodID,
		expense.Description.String(), expense.CreatedAt)

	return mapWriteError(err, domain.EntityExpense)
}

func (r *ExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE expenses SET
		   amount = $2, date = $3, concept_id = $4, payee_id = $5, person_id = $6,
		   account_id = $7, payment_method_id = $8, description = $9
		 WHERE id = $1`,
		expense.ID, expense.Amount.Decimal(), expense.Date,
		expense.ConceptID, expense.PayeeID, expense.PersonID,
		expense.AccountID, expense.PaymentMethodID, expense.Description.String())
	if err != nil {
		return mapWriteError(err, domain.EntityExpense)
	}

	return requireUpdated(tag, domain.EntityExpense)
}

func (r *ExpenseRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityExpense)
	}

	return tag.RowsAffected(), nil
}

func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	return scanMovementForUpdate(ctx, tx, id,
		`SELECT id, owner_id, amount, date, concept_id, payee_id, person_id,
		        account_id, payment_method_id, description, created_at
		 FROM expenses WHERE id = $1 FOR UPDATE`,
		func(row movementRow) *domain.Expense {
			return &domain.Expense{
				ID:              row.ID,
				OwnerID:         row.OwnerID,
				Amount:          row.Amount,
				Date:            row.Date,
				ConceptID:       row.ConceptID,
				PayeeID:         row.PartyID,
				PersonID:        row.PersonID,
				AccountID:       row.AccountID,
				PaymentMethodID: row.PaymentMethodID,
				Description:     domain.Description(row.Description),
				CreatedAt:       row.CreatedAt,
			}
		})
}

// ExpenseReadRepository implements usecase.ReadRepository[ExpenseDTO],
// resolving all reference names with joins.
type ExpenseReadRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseReadRepository creates a new ExpenseReadRepository.
func NewExpenseReadRepository(pool *pgxpool.Pool) *ExpenseReadRepository {
	return &ExpenseReadRepository{pool: pool}
}

const expenseFrom = `
	FROM expenses e
	JOIN concepts c ON c.id = e.concept_id
	JOIN payees py ON py.id = e.payee_id
	JOIN persons pr ON pr.id = e.person_id
	JOIN accounts a ON a.id = e.account_id
	JOIN payment_methods pm ON pm.id = e.payment_method_id`

const expenseSelect = `
	SELECT e.id, e.amount, e.date,
	       e.concept_id, c.name,
	       py.name, pr.name,
	       e.account_id, a.name,
	       pm.name, e.description, e.created_at` + expenseFrom

func (r *ExpenseReadRepository) GetByID(ctx context.Context, id string) (*usecase.ExpenseDTO, error) {
	var dto usecase.ExpenseDTO

	err := r.pool.QueryRow(ctx, expenseSelect+` WHERE e.id = $1`, id).
		Scan(&dto.ID, &dto.Amount, &dto.Date,
			&dto.ConceptID, &dto.ConceptName,
			&dto.PayeeName, &dto.PersonName,
			&dto.AccountID, &dto.AccountName,
			&dto.PaymentMethodName, &dto.Description, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *ExpenseReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ExpenseDTO], error) {
	// A search term matches the description or the joined payee and
	// concept names.
	where, args := filters(q, "e.owner_id", "e.description", "py.name", "c.name")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) %s %s", expenseFrom, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("%s %s %s", expenseSelect, where, orderAndPage(q, "e.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.ExpenseDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.ExpenseDTO
		if err := rows.Scan(&dto.ID, &dto.Amount, &dto.Date,
			&dto.ConceptID, &dto.ConceptName,
			&dto.PayeeName, &dto.PersonName,
			&dto.AccountID, &dto.AccountName,
			&dto.PaymentMethodName, &dto.Description, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.ExpenseDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
