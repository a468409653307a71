package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

type fakeRuleSource struct {
	expenses []domain.ScheduledExpense
	incomes  []domain.ScheduledIncome
	err      error
}

func (f *fakeRuleSource) ActiveExpenseRules(ctx context.Context) ([]domain.ScheduledExpense, error) {
	return f.expenses, f.err
}

func (f *fakeRuleSource) ExpenseRule(ctx context.Context, id string) (*domain.ScheduledExpense, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			return &f.expenses[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRuleSource) ActiveIncomeRules(ctx context.Context) ([]domain.ScheduledIncome, error) {
	return f.incomes, f.err
}

func (f *fakeRuleSource) IncomeRule(ctx context.Context, id string) (*domain.ScheduledIncome, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.incomes {
		if f.incomes[i].ID == id {
			return &f.incomes[i], nil
		}
	}
	return nil, nil
}

type fakeRegistrars struct {
	expenseInputs []usecase.CreateExpenseInput
	incomeInputs  []usecase.CreateIncomeInput
}

func (f *fakeRegistrars) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (string, error) {
	f.expenseInputs = append(f.expenseInputs, input)
	return "exp-1", nil
}

func (f *fakeRegistrars) CreateIncome(ctx context.Context, input usecase.CreateIncomeInput) (string, error) {
	f.incomeInputs = append(f.incomeInputs, input)
	return "inc-1", nil
}

func expenseRule(t *testing.T, id, jobID string) domain.ScheduledExpense {
	t.Helper()

	rule, err := domain.NewScheduledExpense(id, "user-1", decimal.NewFromInt(50), "monthly",
		time.Now().Add(24*time.Hour), "con-1", "pay-1", "", "acc-1", "pm-1", jobID, time.Now())
	if err != nil {
		t.Fatalf("build expense rule: %v", err)
	}
	return *rule
}

func incomeRule(t *testing.T, id, jobID string) domain.ScheduledIncome {
	t.Helper()

	rule, err := domain.NewScheduledIncome(id, "user-1", decimal.NewFromInt(2000), "monthly",
		time.Now().Add(24*time.Hour), "con-2", "cli-1", "", "acc-1", "pm-1", jobID, time.Now())
	if err != nil {
		t.Fatalf("build income rule: %v", err)
	}
	return *rule
}

func TestRecurringStartSchedulesActiveRules(t *testing.T) {
	runner := NewRunner()
	rules := &fakeRuleSource{
		expenses: []domain.ScheduledExpense{expenseRule(t, "se-1", "job-1"), expenseRule(t, "se-2", "job-2")},
		incomes:  []domain.ScheduledIncome{incomeRule(t, "si-1", "job-3")},
	}

	rec := NewRecurringMovements(runner, rules, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer rec.Stop(context.Background())

	if runner.Active() != 3 {
		t.Fatalf("expected 3 scheduled entries, got %d", runner.Active())
	}
}

func TestRecurringStartPropagatesLoadError(t *testing.T) {
	runner := NewRunner()
	rules := &fakeRuleSource{err: errors.New("connection refused")}

	rec := NewRecurringMovements(runner, rules, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.Start(context.Background()); err == nil {
		t.Fatalf("expected error when rules cannot be loaded")
	}
	if runner.Active() != 0 {
		t.Fatalf("expected no entries after failed start, got %d", runner.Active())
	}
}

func TestSyncExpenseSchedulesExistingRule(t *testing.T) {
	runner := NewRunner()
	rules := &fakeRuleSource{expenses: []domain.ScheduledExpense{expenseRule(t, "se-1", "job-1")}}

	rec := NewRecurringMovements(runner, rules, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.SyncExpense(context.Background(), "se-1"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if runner.Active() != 1 {
		t.Fatalf("expected 1 scheduled entry, got %d", runner.Active())
	}
}

func TestSyncExpenseSkipsMissingRule(t *testing.T) {
	runner := NewRunner()

	rec := NewRecurringMovements(runner, &fakeRuleSource{}, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.SyncExpense(context.Background(), "deleted-in-the-meantime"); err != nil {
		t.Fatalf("sync of missing rule should be a no-op, got %v", err)
	}

	if runner.Active() != 0 {
		t.Fatalf("expected no entries, got %d", runner.Active())
	}
}

func TestSyncExpenseSkipsInactiveRule(t *testing.T) {
	runner := NewRunner()
	rule := expenseRule(t, "se-1", "job-1")
	rule.Active = false
	rules := &fakeRuleSource{expenses: []domain.ScheduledExpense{rule}}

	rec := NewRecurringMovements(runner, rules, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.SyncExpense(context.Background(), "se-1"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if runner.Active() != 0 {
		t.Fatalf("inactive rule must not be scheduled, got %d entries", runner.Active())
	}
}

func TestSyncIncomeSchedulesExistingRule(t *testing.T) {
	runner := NewRunner()
	rules := &fakeRuleSource{incomes: []domain.ScheduledIncome{incomeRule(t, "si-1", "job-1")}}

	rec := NewRecurringMovements(runner, rules, &fakeRegistrars{}, &fakeRegistrars{}, nil)
	if err := rec.SyncIncome(context.Background(), "si-1"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if runner.Active() != 1 {
		t.Fatalf("expected 1 scheduled entry, got %d", runner.Active())
	}
}
