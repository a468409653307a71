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

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Create inserts an account inside the open transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO accounts (id, owner_id, name, balance, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.OwnerID, account.Name.String(), account.Balance,
		account.CreatedAt, account.UpdatedAt)

	return mapWriteError(err, domain.EntityAccount)
}

// Update persists a rename. Balance changes go through UpdateBalance.
func (r *AccountRepository) Update(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE accounts SET name = $2, updated_at = $3 WHERE id = $1`,
		account.ID, account.Name.String(), account.UpdatedAt)
	if err != nil {
		return mapWriteError(err, domain.EntityAccount)
	}

	return requireUpdated(tag, domain.EntityAccount)
}

// Delete removes the account and reports rows affected. Accounts referenced
// by movements are kept by the foreign keys and surface as a conflict.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityAccount)
	}

	return tag.RowsAffected(), nil
}

// GetByIDForUpdate loads the account with a FOR UPDATE lock. Absent rows
// yield (nil, nil).
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	var (
		account domain.Account
		name    string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, name, balance, created_at, updated_at
		 FROM accounts WHERE id = $1 FOR UPDATE`, id).
		Scan(&account.ID, &account.OwnerID, &name, &account.Balance,
			&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	account.Name = domain.Name(name)

	return &account, nil
}

// UpdateBalance persists the balance mutated by an event applier, inside
// the applier's transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		account.ID, account.Balance, account.UpdatedAt)
	if err != nil {
		return err
	}

	return requireUpdated(tag, domain.EntityAccount)
}

// AccountReadRepository implements usecase.ReadRepository[AccountDTO].
type AccountReadRepository struct {
	pool *pgxpool.Pool
}

// NewAccountReadRepository creates a new AccountReadRepository.
func NewAccountReadRepository(pool *pgxpool.Pool) *AccountReadRepository {
	return &AccountReadRepository{pool: pool}
}

// GetByID returns the account DTO, or (nil, nil) when no row matches.
func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*usecase.AccountDTO, error) {
	var dto usecase.AccountDTO

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, balance, created_at, updated_at FROM accounts WHERE id = $1`, id).
		Scan(&dto.ID, &dto.Name, &dto.Balance, &dto.CreatedAt, &dto.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

// List returns one page of account DTOs.
func (r *AccountReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.AccountDTO], error) {
	where, args := filters(q, "owner_id", "name")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM accounts %s", where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT id, name, balance, created_at, updated_at FROM accounts %s %s",
			where, orderAndPage(q, "")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.AccountDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.AccountDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.Balance, &dto.CreatedAt, &dto.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.AccountDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
