package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money spent from an account, attributed to a concept, payee,
// person and payment method. Creating an expense withdraws its amount from
// the account through the ExpenseRegistered event.
type Expense struct {
	ID              string
	OwnerID         string
	Amount          Amount
	Date            time.Time
	ConceptID       string
	PayeeID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     Description
	CreatedAt       time.Time
}

// NewExpense creates an expense and returns the events to apply.
func NewExpense(id, ownerID string, amount decimal.Decimal, date time.Time, conceptID, payeeID, personID, accountID, paymentMethodID, description string, now time.Time) (*Expense, []Event, error) {
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

	e := &Expense{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          a,
		Date:            date,
		ConceptID:       conceptID,
		PayeeID:         payeeID,
		PersonID:        personID,
		AccountID:       accountID,
		PaymentMethodID: paymentMethodID,
		Description:     d,
		CreatedAt:       now,
	}

	events := []Event{ExpenseRegistered{
		ExpenseID: id,
		AccountID: accountID,
		Amount:    a.Decimal(),
	}}

	return e, events, nil
}

// Update replaces the expense's fields. The previous amount is deposited
// back into the previous account and the new amount withdrawn from the new
// one, so balances stay consistent when amount or account change.
func (e *Expense) Update(amount decimal.Decimal, date time.Time, conceptID, payeeID, personID, accountID, paymentMethodID, description string) ([]Event, error) {
	a, err := NewAmount(amount)
	if err != nil {
		return nil, err
	}

	d, err := NewDescription(description)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	// Each event locks its account when applied, so the pair is ordered
	// by account id to keep lock acquisition in a global order across
	// concurrent transactions.
	reverse := ExpenseDeleted{ExpenseID: e.ID, AccountID: e.AccountID, Amount: e.Amount.Decimal()}
	apply := ExpenseRegistered{ExpenseID: e.ID, AccountID: accountID, Amount: a.Decimal()}

	events := []Event{reverse, apply}
	if accountID < e.AccountID {
		events = []Event{apply, reverse}
	}

	e.Amount = a
	e.Date = date
	e.ConceptID = conceptID
	e.PayeeID = payeeID
	e.PersonID = personID
	e.AccountID = accountID
	e.PaymentMethodID = paymentMethodID
	e.Description = d

	return events, nil
}

// MarkAsDeleted raises the event that reverses the expense's effect on the
// account balance. The caller deletes the row afterwards.
func (e *Expense) MarkAsDeleted() []Event {
	return []Event{ExpenseDeleted{
		ExpenseID: e.ID,
		AccountID: e.AccountID,
		Amount:    e.Amount.Decimal(),
	}}
}
