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

type expenseFixture struct {
	uc       *usecase.ExpenseUseCase
	accounts *mocks.MockAccountRepository
	repo     *mocks.MockWriteRepository[domain.Expense]
	checker  *mocks.MockReferenceChecker
	txMgr    *mocks.MockTransactionManager
}

func newExpenseFixture(t *testing.T, balance int64) *expenseFixture {
	t.Helper()

	f := &expenseFixture{
		accounts: mocks.NewMockAccountRepository(),
		repo:     mocks.NewMockWriteRepository(func(e *domain.Expense) string { return e.ID }),
		checker:  mocks.NewMockReferenceChecker(),
		txMgr:    mocks.NewMockTransactionManager(),
	}

	acc, err := domain.NewAccount("acc-1", "user-1", "Checking", decimal.NewFromInt(balance), time.Now().UTC())
	if err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	f.accounts.Put(acc)

	for entity, id := range map[string]string{
		"concept":        "con-1",
		"payee":          "pay-1",
		"person":         "per-1",
		"account":        "acc-1",
		"payment_method": "pm-1",
	} {
		f.checker.AddExisting(entity, id)
	}

	dispatcher := usecase.NewDispatcher()
	usecase.NewBalanceApplier(f.accounts).Register(dispatcher)

	deps := usecase.Deps{
		Tx:       f.txMgr,
		Cache:    mocks.NewMockCache(),
		Events:   dispatcher,
		IDGen:    &mocks.MockIDGenerator{},
		Checker:  f.checker,
		CacheTTL: time.Minute,
	}

	f.uc = usecase.NewExpenseUseCase(deps, f.repo, mocks.NewMockReadRepository[usecase.ExpenseDTO]())

	return f
}

func validExpenseInput(amount int64) usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		OwnerID:         "user-1",
		Amount:          decimal.NewFromInt(amount),
		Date:            time.Now().UTC(),
		ConceptID:       "con-1",
		PayeeID:         "pay-1",
		PersonID:        "per-1",
		AccountID:       "acc-1",
		PaymentMethodID: "pm-1",
	}
}

func TestExpenseUseCase_CreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("withdraws the amount from the account", func(t *testing.T) {
		f := newExpenseFixture(t, 500)

		id, err := f.uc.CreateExpense(ctx, validExpenseInput(120))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.repo.Get(id) == nil {
			t.Error("expected expense to be persisted")
		}

		if got := f.accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(380)) {
			t.Errorf("expected balance 380, got %s", got)
		}
	})

	t.Run("missing concept is not found", func(t *testing.T) {
		f := newExpenseFixture(t, 500)

		input := validExpenseInput(120)
		input.ConceptID = "con-ghost"

		_, err := f.uc.CreateExpense(ctx, input)

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureNotFound {
			t.Errorf("expected NotFound failure, got %v", err)
		}

		if f.repo.Len() != 0 {
			t.Error("nothing must be persisted when a reference is missing")
		}
	})

	t.Run("amount beyond the balance is a validation failure", func(t *testing.T) {
		f := newExpenseFixture(t, 50)

		_, err := f.uc.CreateExpense(ctx, validExpenseInput(120))

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}

		if f.txMgr.Tx.Committed {
			t.Error("transaction must not commit")
		}
	})

	t.Run("non-positive amount is rejected before any write", func(t *testing.T) {
		f := newExpenseFixture(t, 500)

		_, err := f.uc.CreateExpense(ctx, validExpenseInput(0))

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}
	})
}

func TestExpenseUseCase_DeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("deposits the amount back", func(t *testing.T) {
		f := newExpenseFixture(t, 500)

		id, err := f.uc.CreateExpense(ctx, validExpenseInput(120))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := f.uc.DeleteExpense(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.repo.Get(id) != nil {
			t.Error("expected expense to be removed")
		}

		if got := f.accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected balance restored to 500, got %s", got)
		}
	})

	t.Run("missing id is not found", func(t *testing.T) {
		f := newExpenseFixture(t, 500)

		err := f.uc.DeleteExpense(ctx, "exp-ghost")

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureNotFound {
			t.Errorf("expected NotFound failure, got %v", err)
		}
	})
}

func TestExpenseUseCase_UpdateExpense(t *testing.T) {
	ctx := context.Background()
	f := newExpenseFixture(t, 500)

	id, err := f.uc.CreateExpense(ctx, validExpenseInput(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 500 - 120 = 380; reversing 120 and applying 200 leaves 300.
	_, err = f.uc.UpdateExpense(ctx, usecase.UpdateExpenseInput{
		ID:              id,
		OwnerID:         "user-1",
		Amount:          decimal.NewFromInt(200),
		Date:            time.Now().UTC(),
		ConceptID:       "con-1",
		PayeeID:         "pay-1",
		PersonID:        "per-1",
		AccountID:       "acc-1",
		PaymentMethodID: "pm-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.accounts.Get("acc-1").Balance; !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected balance 300, got %s", got)
	}
}
