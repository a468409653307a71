package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves money between two accounts of the same owner. It has no
// update path: repositioning a transfer is recreate-and-delete.
type Transfer struct {
	ID            string
	OwnerID       string
	FromAccountID string
	ToAccountID   string
	Amount        Amount
	Date          time.Time
	Description   Description
	CreatedAt     time.Time
}

// NewTransfer creates a transfer and returns the balance-moving event.
// Source and destination must differ.
func NewTransfer(id, ownerID, fromAccountID, toAccountID string, amount decimal.Decimal, date time.Time, description string, now time.Time) (*Transfer, []Event, error) {
	if fromAccountID == toAccountID {
		return nil, nil, ErrSameAccount
	}

	a, err := NewAmount(amount)
	if err != nil {
		return nil, nil, err
	}

	d, err := NewDescription(description)
	if err != nil {
		return nil, nil, err
	}

	if date.IsZero() {
		return nil, nil, ErrInvalidDate
	}

	t := &Transfer{
		ID:            id,
		OwnerID:       ownerID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        a,
		Date:          date,
		Description:   d,
		CreatedAt:     now,
	}

	events := []Event{TransferRegistered{
		TransferID:    id,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        a.Decimal(),
	}}

	return t, events, nil
}

// MarkAsDeleted returns the event that reverses the balance movement. The
// reversal withdraws from the destination, so it fails the same way any
// withdrawal does when the destination balance no longer covers the amount.
func (t *Transfer) MarkAsDeleted() []Event {
	return []Event{TransferDeleted{
		TransferID:    t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount.Decimal(),
	}}
}
