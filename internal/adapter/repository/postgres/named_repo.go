package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// namedRow is the storage shape shared by the catalog tables (clients,
// payees, persons, payment methods).
type namedRow struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}

// NamedRepository implements usecase.WriteRepository for any catalog entity
// whose persistent state is a per-owner unique name. One implementation
// serves four tables; only the table name and the row mapping differ.
type NamedRepository[E any] struct {
	table   string
	entity  string
	toRow   func(*E) namedRow
	fromRow func(namedRow) *E
}

// Create inserts the entity inside the open transaction.
func (r *NamedRepository[E]) Create(ctx context.Context, tx usecase.Transaction, entity *E) error {
	row := r.toRow(entity)

	query := fmt.Sprintf(
		"INSERT INTO %s (id, owner_id, name, created_at) VALUES ($1, $2, $3, $4)", r.table)

	_, err := txOf(tx).Exec(ctx, query, row.ID, row.OwnerID, row.Name, row.CreatedAt)

	return mapWriteError(err, r.entity)
}

// Update persists a rename inside the open transaction.
func (r *NamedRepository[E]) Update(ctx context.Context, tx usecase.Transaction, entity *E) error {
	row := r.toRow(entity)

	query := fmt.Sprintf("UPDATE %s SET name = $2 WHERE id = $1", r.table)

	tag, err := txOf(tx).Exec(ctx, query, row.ID, row.Name)
	if err != nil {
		return mapWriteError(err, r.entity)
	}

	return requireUpdated(tag, r.entity)
}

// Delete removes the row and reports how many rows were affected.
func (r *NamedRepository[E]) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table)

	tag, err := txOf(tx).Exec(ctx, query, id)
	if err != nil {
		return 0, mapWriteError(err, r.entity)
	}

	return tag.RowsAffected(), nil
}

// GetByIDForUpdate loads the row with a FOR UPDATE lock. Absent rows yield
// (nil, nil).
func (r *NamedRepository[E]) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*E, error) {
	query := fmt.Sprintf(
		"SELECT id, owner_id, name, created_at FROM %s WHERE id = $1 FOR UPDATE", r.table)

	var row namedRow
	err := txOf(tx).QueryRow(ctx, query, id).Scan(&row.ID, &row.OwnerID, &row.Name, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return r.fromRow(row), nil
}

// NewClientRepository creates the write repository for clients.
func NewClientRepository() *NamedRepository[domain.Client] {
	return &NamedRepository[domain.Client]{
		table:  "clients",
		entity: domain.EntityClient,
		toRow: func(c *domain.Client) namedRow {
			return namedRow{ID: c.ID, OwnerID: c.OwnerID, Name: c.Name.String(), CreatedAt: c.CreatedAt}
		},
		fromRow: func(r namedRow) *domain.Client {
			return &domain.Client{ID: r.ID, OwnerID: r.OwnerID, Name: domain.Name(r.Name), CreatedAt: r.CreatedAt}
		},
	}
}

// NewPayeeRepository creates the write repository for payees.
func NewPayeeRepository() *NamedRepository[domain.Payee] {
	return &NamedRepository[domain.Payee]{
		table:  "payees",
		entity: domain.EntityPayee,
		toRow: func(p *domain.Payee) namedRow {
			return namedRow{ID: p.ID, OwnerID: p.OwnerID, Name: p.Name.String(), CreatedAt: p.CreatedAt}
		},
		fromRow: func(r namedRow) *domain.Payee {
			return &domain.Payee{ID: r.ID, OwnerID: r.OwnerID, Name: domain.Name(r.Name), CreatedAt: r.CreatedAt}
		},
	}
}

// NewPersonRepository creates the write repository for persons.
func NewPersonRepository() *NamedRepository[domain.Person] {
	return &NamedRepository[domain.Person]{
		table:  "persons",
		entity: domain.EntityPerson,
		toRow: func(p *domain.Person) namedRow {
			return namedRow{ID: p.ID, OwnerID: p.OwnerID, Name: p.Name.String(), CreatedAt: p.CreatedAt}
		},
		fromRow: func(r namedRow) *domain.Person {
			return &domain.Person{ID: r.ID, OwnerID: r.OwnerID, Name: domain.Name(r.Name), CreatedAt: r.CreatedAt}
		},
	}
}

// NewPaymentMethodRepository creates the write repository for payment
// methods.
func NewPaymentMethodRepository() *NamedRepository[domain.PaymentMethod] {
	return &NamedRepository[domain.PaymentMethod]{
		table:  "payment_methods",
		entity: domain.EntityPaymentMethod,
		toRow: func(p *domain.PaymentMethod) namedRow {
			return namedRow{ID: p.ID, OwnerID: p.OwnerID, Name: p.Name.String(), CreatedAt: p.CreatedAt}
		},
		fromRow: func(r namedRow) *domain.PaymentMethod {
			return &domain.PaymentMethod{ID: r.ID, OwnerID: r.OwnerID, Name: domain.Name(r.Name), CreatedAt: r.CreatedAt}
		},
	}
}

// NamedReadRepository implements usecase.ReadRepository[NamedDTO] for a
// catalog table.
type NamedReadRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewNamedReadRepository creates a read repository over the given catalog
// table. The table name comes from wiring code, never from input.
func NewNamedReadRepository(pool *pgxpool.Pool, table string) *NamedReadRepository {
	return &NamedReadRepository{pool: pool, table: table}
}

// GetByID returns the DTO for id, or (nil, nil) when no row matches.
func (r *NamedReadRepository) GetByID(ctx context.Context, id string) (*usecase.NamedDTO, error) {
	query := fmt.Sprintf("SELECT id, name, created_at FROM %s WHERE id = $1", r.table)

	var dto usecase.NamedDTO
	err := r.pool.QueryRow(ctx, query, id).Scan(&dto.ID, &dto.Name, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

// List returns one page of DTOs filtered by owner and optional name search.
func (r *NamedReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.NamedDTO], error) {
	where, args := filters(q, "owner_id", "name")

	var total int64
	countQuery := fmt.Sprintf("SELECT count(*) FROM %s %s", r.table, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, name, created_at FROM %s %s %s",
		r.table, where, orderAndPage(q, ""))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.NamedDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.NamedDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.NamedDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
