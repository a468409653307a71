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

type scheduledFixture struct {
	uc        *usecase.ScheduledExpenseUseCase
	repo      *mocks.MockWriteRepository[domain.ScheduledExpense]
	scheduler *mocks.MockJobScheduler
	checker   *mocks.MockReferenceChecker
}

func newScheduledFixture() *scheduledFixture {
	f := &scheduledFixture{
		repo:      mocks.NewMockWriteRepository(func(se *domain.ScheduledExpense) string { return se.ID }),
		scheduler: &mocks.MockJobScheduler{},
		checker:   mocks.NewMockReferenceChecker(),
	}

	for entity, id := range map[string]string{
		"concept":        "con-1",
		"payee":          "pay-1",
		"person":         "per-1",
		"account":        "acc-1",
		"payment_method": "pm-1",
	} {
		f.checker.AddExisting(entity, id)
	}

	deps := usecase.Deps{
		Tx:       mocks.NewMockTransactionManager(),
		Cache:    mocks.NewMockCache(),
		Events:   usecase.NewDispatcher(),
		IDGen:    &mocks.MockIDGenerator{},
		Checker:  f.checker,
		CacheTTL: time.Minute,
	}

	f.uc = usecase.NewScheduledExpenseUseCase(deps, f.scheduler, f.repo,
		mocks.NewMockReadRepository[usecase.ScheduledExpenseDTO]())

	return f
}

func validScheduledExpenseInput() usecase.CreateScheduledExpenseInput {
	return usecase.CreateScheduledExpenseInput{
		OwnerID:         "user-1",
		Amount:          decimal.NewFromInt(45),
		Frequency:       "monthly",
		NextRun:         time.Now().UTC().AddDate(0, 0, 1),
		ConceptID:       "con-1",
		PayeeID:         "pay-1",
		PersonID:        "per-1",
		AccountID:       "acc-1",
		PaymentMethodID: "pm-1",
	}
}

func TestScheduledExpenseUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the generated job id", func(t *testing.T) {
		f := newScheduledFixture()

		id, err := f.uc.CreateScheduledExpense(ctx, validScheduledExpenseInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		se := f.repo.Get(id)
		if se == nil {
			t.Fatal("expected rule to be persisted")
		}

		if se.JobID == "" {
			t.Error("expected a job id")
		}

		if !se.Active {
			t.Error("expected rule to start active")
		}
	})

	t.Run("invalid frequency is a validation failure", func(t *testing.T) {
		f := newScheduledFixture()

		input := validScheduledExpenseInput()
		input.Frequency = "hourly"

		_, err := f.uc.CreateScheduledExpense(ctx, input)

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}
	})

	t.Run("missing account is not found", func(t *testing.T) {
		f := newScheduledFixture()

		input := validScheduledExpenseInput()
		input.AccountID = "acc-ghost"

		_, err := f.uc.CreateScheduledExpense(ctx, input)

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureNotFound {
			t.Errorf("expected NotFound failure, got %v", err)
		}
	})
}

func TestScheduledExpenseUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	f := newScheduledFixture()

	id, err := f.uc.CreateScheduledExpense(ctx, validScheduledExpenseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jobID := f.repo.Get(id).JobID

	if err := f.uc.DeleteScheduledExpense(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.repo.Get(id) != nil {
		t.Error("expected rule to be removed")
	}

	if len(f.scheduler.Cancelled) != 1 || f.scheduler.Cancelled[0] != jobID {
		t.Errorf("expected job %s to be cancelled, got %v", jobID, f.scheduler.Cancelled)
	}
}

func TestScheduledExpenseUseCase_Update(t *testing.T) {
	f := newScheduledFixture()

	_, err := f.uc.UpdateScheduledExpense(context.Background(), "sched-1")

	failure, ok := usecase.AsFailure(err)
	if !ok || failure.Kind != usecase.FailureValidation {
		t.Errorf("expected Validation failure, got %v", err)
	}
}
