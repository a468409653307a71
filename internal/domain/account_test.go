package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewAccount(t *testing.T) {
	now := time.Now().UTC()

	t.Run("with initial balance", func(t *testing.T) {
		acc, err := NewAccount("acc-1", "user-1", "Checking", decimal.NewFromInt(1000), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !acc.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance 1000, got %s", acc.Balance)
		}
	})

	t.Run("zero initial balance", func(t *testing.T) {
		acc, err := NewAccount("acc-1", "user-1", "Savings", decimal.Zero, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !acc.Balance.IsZero() {
			t.Errorf("expected zero balance, got %s", acc.Balance)
		}
	})

	t.Run("negative initial balance", func(t *testing.T) {
		_, err := NewAccount("acc-1", "user-1", "Checking", decimal.NewFromInt(-1), now)
		if !errors.Is(err, ErrNegativeBalance) {
			t.Errorf("expected ErrNegativeBalance, got %v", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := NewAccount("acc-1", "user-1", "  ", decimal.Zero, now)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("expected ErrInvalidName, got %v", err)
		}
	})
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		want        decimal.Decimal
		expectError bool
	}{
		{
			name:    "partial withdrawal",
			balance: decimal.NewFromInt(1000),
			amount:  decimal.NewFromInt(250),
			want:    decimal.NewFromInt(750),
		},
		{
			name:    "exact balance",
			balance: decimal.NewFromInt(100),
			amount:  decimal.NewFromInt(100),
			want:    decimal.Zero,
		},
		{
			name:        "insufficient funds",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "empty account",
			balance:     decimal.Zero,
			amount:      decimal.NewFromInt(1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{ID: "acc-1", Balance: tt.balance}

			err := acc.Withdraw(tt.amount, time.Now().UTC())

			if tt.expectError {
				if !errors.Is(err, ErrInsufficientFunds) {
					t.Errorf("expected ErrInsufficientFunds, got %v", err)
				}
				if !acc.Balance.Equal(tt.balance) {
					t.Errorf("balance changed on failed withdrawal: %s", acc.Balance)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !acc.Balance.Equal(tt.want) {
				t.Errorf("expected balance %s, got %s", tt.want, acc.Balance)
			}
		})
	}
}

func TestAccount_Deposit(t *testing.T) {
	acc := &Account{ID: "acc-1", Balance: decimal.NewFromInt(10)}

	acc.Deposit(decimal.RequireFromString("2.50"), time.Now().UTC())

	if !acc.Balance.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected balance 12.50, got %s", acc.Balance)
	}
}
