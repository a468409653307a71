package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hucha/internal/domain"
)

// entityTables resolves the table an entity's ids live in. The table name
// is never taken from input, only from this map.
var entityTables = map[string]string{
	domain.EntityUser:             "users",
	domain.EntityAccount:          "accounts",
	domain.EntityCategory:         "categories",
	domain.EntityClient:           "clients",
	domain.EntityPayee:            "payees",
	domain.EntityPerson:           "persons",
	domain.EntityPaymentMethod:    "payment_methods",
	domain.EntityConcept:          "concepts",
	domain.EntityExpense:          "expenses",
	domain.EntityIncome:           "incomes",
	domain.EntityTransfer:         "transfers",
	domain.EntityScheduledExpense: "scheduled_expenses",
	domain.EntityScheduledIncome:  "scheduled_incomes",
}

// ReferenceChecker implements usecase.ReferenceChecker with minimal
// existence probes. Probes run outside any transaction; the pool is safe
// for concurrent use.
type ReferenceChecker struct {
	pool *pgxpool.Pool
}

// NewReferenceChecker creates a new ReferenceChecker.
func NewReferenceChecker(pool *pgxpool.Pool) *ReferenceChecker {
	return &ReferenceChecker{pool: pool}
}

// Exists reports whether an entity with the given id exists.
func (c *ReferenceChecker) Exists(ctx context.Context, entity, id string) (bool, error) {
	table, ok := entityTables[entity]
	if !ok {
		return false, fmt.Errorf("unknown entity type %q", entity)
	}

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)

	if err := c.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// NameTaken reports whether another entity of the same owner already uses
// the name. excludeID skips the entity itself on renames.
func (c *ReferenceChecker) NameTaken(ctx context.Context, entity, ownerID, name, excludeID string) (bool, error) {
	table, ok := entityTables[entity]
	if !ok {
		return false, fmt.Errorf("unknown entity type %q", entity)
	}

	var taken bool
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE owner_id = $1 AND lower(name) = lower($2) AND id <> $3)",
		table)

	if err := c.pool.QueryRow(ctx, query, ownerID, name, excludeID).Scan(&taken); err != nil {
		return false, err
	}

	return taken, nil
}
