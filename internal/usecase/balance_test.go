package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
	"github.com/iho/hucha/internal/usecase/mocks"
)

func newBalanceFixture(t *testing.T, balance int64) (*usecase.Dispatcher, *mocks.MockAccountRepository) {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()

	acc, err := domain.NewAccount("acc-1", "user-1", "Checking", decimal.NewFromInt(balance), time.Now().UTC())
	if err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	accounts.Put(acc)

	dispatcher := usecase.NewDispatcher()
	usecase.NewBalanceApplier(accounts).Register(dispatcher)

	return dispatcher, accounts
}

func TestBalanceApplier_ExpenseEvents(t *testing.T) {
	ctx := context.Background()
	tx := &mocks.MockTransaction{}

	t.Run("registration withdraws", func(t *testing.T) {
		dispatcher, accounts := newBalanceFixture(t, 100)

		err := dispatcher.Dispatch(ctx, tx, []domain.Event{
			domain.ExpenseRegistered{ExpenseID: "exp-1", AccountID: "acc-1", Amount: decimal.NewFromInt(30)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected balance 70, got %s", got)
		}
	})

	t.Run("deletion deposits back", func(t *testing.T) {
		dispatcher, accounts := newBalanceFixture(t, 70)

		err := dispatcher.Dispatch(ctx, tx, []domain.Event{
			domain.ExpenseDeleted{ExpenseID: "exp-1", AccountID: "acc-1", Amount: decimal.NewFromInt(30)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected balance 100, got %s", got)
		}
	})

	t.Run("registration beyond the balance fails", func(t *testing.T) {
		dispatcher, accounts := newBalanceFixture(t, 20)

		err := dispatcher.Dispatch(ctx, tx, []domain.Event{
			domain.ExpenseRegistered{ExpenseID: "exp-1", AccountID: "acc-1", Amount: decimal.NewFromInt(30)},
		})

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}

		if got := accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(20)) {
			t.Errorf("balance must be unchanged, got %s", got)
		}
	})
}

func TestBalanceApplier_IncomeEvents(t *testing.T) {
	ctx := context.Background()
	tx := &mocks.MockTransaction{}

	t.Run("registration deposits", func(t *testing.T) {
		dispatcher, accounts := newBalanceFixture(t, 0)

		err := dispatcher.Dispatch(ctx, tx, []domain.Event{
			domain.IncomeRegistered{IncomeID: "inc-1", AccountID: "acc-1", Amount: decimal.NewFromInt(1500)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected balance 1500, got %s", got)
		}
	})

	t.Run("deletion withdraws the deposit", func(t *testing.T) {
		dispatcher, accounts := newBalanceFixture(t, 1500)

		err := dispatcher.Dispatch(ctx, tx, []domain.Event{
			domain.IncomeDeleted{IncomeID: "inc-1", AccountID: "acc-1", Amount: decimal.NewFromInt(1500)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := accounts.Get("acc-1").Balance; !got.IsZero() {
			t.Errorf("expected zero balance, got %s", got)
		}
	})
}

func TestBalanceApplier_MissingAccountSurfaces(t *testing.T) {
	dispatcher, _ := newBalanceFixture(t, 100)

	err := dispatcher.Dispatch(context.Background(), &mocks.MockTransaction{}, []domain.Event{
		domain.ExpenseRegistered{ExpenseID: "exp-1", AccountID: "acc-ghost", Amount: decimal.NewFromInt(10)},
	})

	failure, ok := usecase.AsFailure(err)
	if !ok || failure.Kind != usecase.FailureUnexpected {
		t.Errorf("expected Unexpected failure, got %v", err)
	}
}

func TestDispatcher_StopsOnFirstError(t *testing.T) {
	dispatcher, accounts := newBalanceFixture(t, 10)

	err := dispatcher.Dispatch(context.Background(), &mocks.MockTransaction{}, []domain.Event{
		domain.ExpenseRegistered{ExpenseID: "exp-1", AccountID: "acc-1", Amount: decimal.NewFromInt(50)},
		domain.IncomeRegistered{IncomeID: "inc-1", AccountID: "acc-1", Amount: decimal.NewFromInt(100)},
	})

	if err == nil {
		t.Fatal("expected error")
	}

	// The failing withdrawal must prevent the later deposit.
	if got := accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected balance 10, got %s", got)
	}
}
