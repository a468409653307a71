package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a money holding owned by a user. Its balance is mutated only
// through Deposit and Withdraw.
type Account struct {
	ID        string
	OwnerID   string
	Name      Name
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an account with an initial balance.
func NewAccount(id, ownerID, name string, initialBalance decimal.Decimal, now time.Time) (*Account, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	if initialBalance.IsNegative() {
		return nil, ErrNegativeBalance
	}

	return &Account{
		ID:        id,
		OwnerID:   ownerID,
		Name:      n,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update renames the account.
func (a *Account) Update(name string, now time.Time) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}

	a.Name = n
	a.UpdatedAt = now

	return nil
}

// Deposit credits the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal, now time.Time) {
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = now
}

// Withdraw debits the balance by amount. Fails when the balance is
// insufficient, leaving the account unchanged.
func (a *Account) Withdraw(amount decimal.Decimal, now time.Time) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = now

	return nil
}
