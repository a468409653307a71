package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// movementRow is the storage shape shared by expenses and incomes. PartyID
// holds the payee for expenses and the client for incomes.
type movementRow struct {
	ID              string
	OwnerID         string
	Amount          domain.Amount
	Date            time.Time
	ConceptID       string
	PartyID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     string
	CreatedAt       time.Time
}

// scanMovementForUpdate runs a locking point query over a movement table
// and rebuilds the aggregate. Absent rows yield (nil, nil).
func scanMovementForUpdate[E any](ctx context.Context, tx usecase.Transaction, id, query string, build func(movementRow) *E) (*E, error) {
	var (
		row    movementRow
		amount decimal.Decimal
	)

	err := txOf(tx).QueryRow(ctx, query, id).
		Scan(&row.ID, &row.OwnerID, &amount, &row.Date,
			&row.ConceptID, &row.PartyID, &row.PersonID,
			&row.AccountID, &row.PaymentMethodID,
			&row.Description, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	// Stored amounts satisfied the value-object rules when written.
	row.Amount, err = domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	return build(row), nil
}
