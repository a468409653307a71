package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is money received into an account from a client. Creating an
// income deposits its amount into the account through the IncomeRegistered
// event; deletion reverses it.
type Income struct {
	ID              string
	OwnerID         string
	Amount          Amount
	Date            time.Time
	ConceptID       string
	ClientID        string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	Description     Description
	CreatedAt       time.Time
}

// NewIncome creates an income and returns the events to apply.
func NewIncome(id, ownerID string, amount decimal.Decimal, date time.Time, conceptID, clientID, personID, accountID, paymentMethodID, description string, now time.Time) (*Income, []Event, error) {
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

	in := &Income{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          a,
		Date:            date,
		ConceptID:       conceptID,
		ClientID:        clientID,
		PersonID:        personID,
		AccountID:       accountID,
		PaymentMethodID: paymentMethodID,
		Description:     d,
		CreatedAt:       now,
	}

	events := []Event{IncomeRegistered{
		IncomeID:  id,
		AccountID: accountID,
		Amount:    a.Decimal(),
	}}

	return in, events, nil
}

// Update replaces the income's fields, reversing the old balance effect and
// applying the new one.
func (in *Income) Update(amount decimal.Decimal, date time.Time, conceptID, clientID, personID, accountID, paymentMethodID, description string) ([]Event, error) {
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

	// Ordered by account id for the same lock-ordering reason as
	// Expense.Update.
	reverse := IncomeDeleted{IncomeID: in.ID, AccountID: in.AccountID, Amount: in.Amount.Decimal()}
	apply := IncomeRegistered{IncomeID: in.ID, AccountID: accountID, Amount: a.Decimal()}

	events := []Event{reverse, apply}
	if accountID < in.AccountID {
		events = []Event{apply, reverse}
	}

	in.Amount = a
	in.Date = date
	in.ConceptID = conceptID
	in.ClientID = clientID
	in.PersonID = personID
	in.AccountID = accountID
	in.PaymentMethodID = paymentMethodID
	in.Description = d

	return events, nil
}

// MarkAsDeleted raises the event that withdraws the income's amount from
// the account, undoing the deposit applied at registration.
func (in *Income) MarkAsDeleted() []Event {
	return []Event{IncomeDeleted{
		IncomeID:  in.ID,
		AccountID: in.AccountID,
		Amount:    in.Amount.Decimal(),
	}}
}
