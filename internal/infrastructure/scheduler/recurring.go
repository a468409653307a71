package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/infrastructure/metrics"
	"github.com/iho/hucha/internal/usecase"
)

// ExpenseRegistrar records one expense. Satisfied by the expense use case.
type ExpenseRegistrar interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (string, error)
}

// IncomeRegistrar records one income. Satisfied by the income use case.
type IncomeRegistrar interface {
	CreateIncome(ctx context.Context, input usecase.CreateIncomeInput) (string, error)
}

// RuleSource loads persisted recurring rules.
type RuleSource interface {
	ActiveExpenseRules(ctx context.Context) ([]domain.ScheduledExpense, error)
	ExpenseRule(ctx context.Context, id string) (*domain.ScheduledExpense, error)
	ActiveIncomeRules(ctx context.Context) ([]domain.ScheduledIncome, error)
	IncomeRule(ctx context.Context, id string) (*domain.ScheduledIncome, error)
}

// RecurringMovements turns persisted rules into cron entries that register
// the corresponding movement on every tick. Cron entries live in process
// only, so Start re-registers all active rules after a restart.
type RecurringMovements struct {
	runner   *Runner
	rules    RuleSource
	expenses ExpenseRegistrar
	incomes  IncomeRegistrar
	metrics  *metrics.Metrics
}

// NewRecurringMovements creates a new RecurringMovements.
func NewRecurringMovements(runner *Runner, rules RuleSource, expenses ExpenseRegistrar, incomes IncomeRegistrar, m *metrics.Metrics) *RecurringMovements {
	return &RecurringMovements{
		runner:   runner,
		rules:    rules,
		expenses: expenses,
		incomes:  incomes,
		metrics:  m,
	}
}

// Start schedules every active rule and begins ticking.
func (s *RecurringMovements) Start(ctx context.Context) error {
	expenseRules, err := s.rules.ActiveExpenseRules(ctx)
	if err != nil {
		return fmt.Errorf("load expense rules: %w", err)
	}

	for i := range expenseRules {
		if err := s.scheduleExpense(&expenseRules[i]); err != nil {
			return err
		}
	}

	incomeRules, err := s.rules.ActiveIncomeRules(ctx)
	if err != nil {
		return fmt.Errorf("load income rules: %w", err)
	}

	for i := range incomeRules {
		if err := s.scheduleIncome(&incomeRules[i]); err != nil {
			return err
		}
	}

	s.runner.Start()

	log.Info().
		Int("expense_rules", len(expenseRules)).
		Int("income_rules", len(incomeRules)).
		Msg("recurring movement scheduler started")

	return nil
}

// Stop halts the underlying runner.
func (s *RecurringMovements) Stop(ctx context.Context) error {
	return s.runner.Stop(ctx)
}

// SyncExpense schedules the rule with the given id. Call after creating a
// rule; a rule deleted in the meantime is skipped.
func (s *RecurringMovements) SyncExpense(ctx context.Context, id string) error {
	rule, err := s.rules.ExpenseRule(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil || !rule.Active {
		return nil
	}

	return s.scheduleExpense(rule)
}

// SyncIncome schedules the rule with the given id.
func (s *RecurringMovements) SyncIncome(ctx context.Context, id string) error {
	rule, err := s.rules.IncomeRule(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil || !rule.Active {
		return nil
	}

	return s.scheduleIncome(rule)
}

func (s *RecurringMovements) scheduleExpense(rule *domain.ScheduledExpense) error {
	r := *rule

	return s.runner.Schedule(r.JobID, r.Frequency, func(ctx context.Context) {
		_, err := s.expenses.CreateExpense(ctx, usecase.CreateExpenseInput{
			OwnerID:         r.OwnerID,
			Amount:          r.Amount.Decimal(),
			Date:            time.Now().UTC(),
			ConceptID:       r.ConceptID,
			PayeeID:         r.PayeeID,
			PersonID:        r.PersonID,
			AccountID:       r.AccountID,
			PaymentMethodID: r.PaymentMethodID,
			Description:     "recurring expense",
		})
		if err != nil {
			s.observeRun("expense", "error")
			log.Error().Err(err).Str("rule_id", r.ID).Msg("recurring expense failed")
			return
		}

		s.observeRun("expense", "ok")
		log.Info().Str("rule_id", r.ID).Msg("recurring expense registered")
	})
}

func (s *RecurringMovements) scheduleIncome(rule *domain.ScheduledIncome) error {
	r := *rule

	return s.runner.Schedule(r.JobID, r.Frequency, func(ctx context.Context) {
		_, err := s.incomes.CreateIncome(ctx, usecase.CreateIncomeInput{
			OwnerID:         r.OwnerID,
			Amount:          r.Amount.Decimal(),
			Date:            time.Now().UTC(),
			ConceptID:       r.ConceptID,
			ClientID:        r.ClientID,
			PersonID:        r.PersonID,
			AccountID:       r.AccountID,
			PaymentMethodID: r.PaymentMethodID,
			Description:     "recurring income",
		})
		if err != nil {
			s.observeRun("income", "error")
			log.Error().Err(err).Str("rule_id", r.ID).Msg("recurring income failed")
			return
		}

		s.observeRun("income", "ok")
		log.Info().Str("rule_id", r.ID).Msg("recurring income registered")
	})
}

func (s *RecurringMovements) observeRun(kind, status string) {
	if s.metrics != nil {
		s.metrics.ScheduledJobRuns.WithLabelValues(kind, status).Inc()
	}
}
