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

// IncomeRepository implements usecase.WriteRepository for incomes.
type IncomeRepository struct{}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository() *IncomeRepository {
	return &IncomeRepository{}
}

func (r *IncomeRepository) Create(ctx context.Context, tx usecase.Transaction, income *domain.Income) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO incomes
		   (id, owner_id, amount, date, concept_id, client_id, person_id,
		    account_id, payment_method_id, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		income.ID, income.OwnerID, income.Amount.Decimal(), income.Date,
		income.ConceptID, income.ClientID, income.PersonID,
		income.AccountID, income.PaymentMethodID,
		income.Description.String(), income.CreatedAt)

	return mapWriteError(err, domain.EntityIncome)
}

func (r *IncomeRepository) Update(ctx context.Context, tx usecase.Transaction, income *domain.Income) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE incomes SET
		   amount = $2, date = $3, concept_id = $4, client_id = $5, person_id = $6,
		   account_id = $7, payment_method_id = $8, description = $9
		 WHERE id = $1`,
		income.ID, income.Amount.Decimal(), income.Date,
		income.ConceptID, income.ClientID, income.PersonID,
		income.AccountID, income.PaymentMethodID, income.Description.String())
	if err != nil {
		return mapWriteError(err, domain.EntityIncome)
	}

	return requireUpdated(tag, domain.EntityIncome)
}

func (r *IncomeRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityIncome)
	}

	return tag.RowsAffected(), nil
}

func (r *IncomeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Income, error) {
	return scanMovementForUpdate(ctx, tx, id,
		`SELECT id, owner_id, amount, date, concept_id, client_id, person_id,
		        account_id, payment_method_id, description, created_at
		 FROM incomes WHERE id = $1 FOR UPDATE`,
		func(row movementRow) *domain.Income {
			return &domain.Income{
				ID:              row.ID,
				OwnerID:         row.OwnerID,
				Amount:          row.Amount,
				Date:            row.Date,
				ConceptID:       row.ConceptID,
				ClientID:        row.PartyID,
				PersonID:        row.PersonID,
				AccountID:       row.AccountID,
				PaymentMethodID: row.PaymentMethodID,
				Description:     domain.Description(row.Description),
				CreatedAt:       row.CreatedAt,
			}
		})
}

// IncomeReadRepository implements usecase.ReadRepository[IncomeDTO].
type IncomeReadRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeReadRepository creates a new IncomeReadRepository.
func NewIncomeReadRepository(pool *pgxpool.Pool) *IncomeReadRepository {
	return &IncomeReadRepository{pool: pool}
}

const incomeFrom = `
	FROM incomes i
	JOIN concepts c ON c.id = i.concept_id
	JOIN clients cl ON cl.id = i.client_id
	JOIN persons pr ON pr.id = i.person_id
	JOIN accounts a ON a.id = i.account_id
	JOIN payment_methods pm ON pm.id = i.payment_method_id`

const incomeSelect = `
	SELECT i.id, i.amount, i.date,
	       i.concept_id, c.name,
	       cl.name, pr.name,
	       i.account_id, a.name,
	       pm.name, i.description, i.created_at` + incomeFrom

func (r *IncomeReadRepository) GetByID(ctx context.Context, id string) (*usecase.IncomeDTO, error) {
	var dto usecase.IncomeDTO

	err := r.pool.QueryRow(ctx, incomeSelect+` WHERE i.id = $1`, id).
		Scan(&dto.ID, &dto.Amount, &dto.Date,
			&dto.ConceptID, &dto.ConceptName,
			&dto.ClientName, &dto.PersonName,
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

func (r *IncomeReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.IncomeDTO], error) {
	// A search term matches the description or the joined client and
	// concept names.
	where, args := filters(q, "i.owner_id", "i.description", "cl.name", "c.name")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) %s %s", incomeFrom, where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("%s %s %s", incomeSelect, where, orderAndPage(q, "i.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.IncomeDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.IncomeDTO
		if err := rows.Scan(&dto.ID, &dto.Amount, &dto.Date,
			&dto.ConceptID, &dto.ConceptName,
			&dto.ClientName, &dto.PersonName,
			&dto.AccountID, &dto.AccountName,
			&dto.PaymentMethodName, &dto.Description, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.IncomeDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
