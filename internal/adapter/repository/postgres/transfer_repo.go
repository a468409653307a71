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

// TransferRepository implements usecase.WriteRepository for transfers.
// Transfers are immutable once registered, so Update is not provided
// beyond satisfying the interface.
type TransferRepository struct{}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository() *TransferRepository {
	return &TransferRepository{}
}

func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO transfers
		   (id, owner_id, from_account_id, to_account_id, amount, date, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transfer.ID, transfer.OwnerID, transfer.FromAccountID, transfer.ToAccountID,
		transfer.Amount.Decimal(), transfer.Date, transfer.Description.String(),
		transfer.CreatedAt)

	return mapWriteError(err, domain.EntityTransfer)
}

func (r *TransferRepository) Update(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	return usecase.NewValidationf("transfers cannot be updated")
}

func (r *TransferRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityTransfer)
	}

	return tag.RowsAffected(), nil
}

func (r *TransferRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error) {
	var (
		transfer    domain.Transfer
		amount      decimal.Decimal
		description string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, from_account_id, to_account_id, amount, date, description, created_at
		 FROM transfers WHERE id = $1 FOR UPDATE`, id).
		Scan(&transfer.ID, &transfer.OwnerID, &transfer.FromAccountID, &transfer.ToAccountID,
			&amount, &transfer.Date, &description, &transfer.CreatedAt)
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

	transfer.Amount = a
	transfer.Description = domain.Description(description)

	return &transfer, nil
}

// TransferReadRepository implements usecase.ReadRepository[TransferDTO].
type TransferReadRepository struct {
	pool *pgxpool.Pool
}

// NewTransferReadRepository creates a new TransferReadRepository.
func NewTransferReadRepository(pool *pgxpool.Pool) *TransferReadRepository {
	return &TransferReadRepository{pool: pool}
}

const transferSelect = `
	SELECT t.id, t.from_account_id, src.name, t.to_account_id, dst.name,
	       t.amount, t.date, t.description, t.created_at
	FROM transfers t
	JOIN accounts src ON src.id = t.from_account_id
	JOIN accounts dst ON dst.id = t.to_account_id`

func (r *TransferReadRepository) GetByID(ctx context.Context, id string) (*usecase.TransferDTO, error) {
	var dto usecase.TransferDTO

	err := r.pool.QueryRow(ctx, transferSelect+` WHERE t.id = $1`, id).
		Scan(&dto.ID, &dto.FromAccountID, &dto.FromAccountName,
			&dto.ToAccountID, &dto.ToAccountName,
			&dto.Amount, &dto.Date, &dto.Description, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *TransferReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.TransferDTO], error) {
	where, args := filters(q, "t.owner_id", "t.description")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM transfers t %s", where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("%s %s %s", transferSelect, where, orderAndPage(q, "t.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.TransferDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.TransferDTO
		if err := rows.Scan(&dto.ID, &dto.FromAccountID, &dto.FromAccountName,
			&dto.ToAccountID, &dto.ToAccountName,
			&dto.Amount, &dto.Date, &dto.Description, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.TransferDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
