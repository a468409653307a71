package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// RuleStore loads recurring movement rules outside any command transaction.
// The scheduler uses it to register cron entries for rules that already
// exist, both at startup and after a rule is created.
type RuleStore struct {
	pool *pgxpool.Pool
}

// NewRuleStore creates a new RuleStore.
func NewRuleStore(pool *pgxpool.Pool) *RuleStore {
	return &RuleStore{pool: pool}
}

const scheduledExpenseRuleSelect = `
	SELECT id, owner_id, amount, frequency, next_run, concept_id, payee_id, person_id,
	       account_id, payment_method_id, job_id, active, created_at
	FROM scheduled_expenses`

const scheduledIncomeRuleSelect = `
	SELECT id, owner_id, amount, frequency, next_run, concept_id, client_id, person_id,
	       account_id, payment_method_id, job_id, active, created_at
	FROM scheduled_incomes`

// ActiveExpenseRules returns every active recurring expense rule.
func (s *RuleStore) ActiveExpenseRules(ctx context.Context) ([]domain.ScheduledExpense, error) {
	rows, err := s.pool.Query(ctx, scheduledExpenseRuleSelect+` WHERE active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.ScheduledExpense

	for rows.Next() {
		rule, err := scanExpenseRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

// ExpenseRule returns one rule by id, or (nil, nil) when absent.
func (s *RuleStore) ExpenseRule(ctx context.Context, id string) (*domain.ScheduledExpense, error) {
	rule, err := scanExpenseRule(s.pool.QueryRow(ctx, scheduledExpenseRuleSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return rule, err
}

// ActiveIncomeRules returns every active recurring income rule.
func (s *RuleStore) ActiveIncomeRules(ctx context.Context) ([]domain.ScheduledIncome, error) {
	rows, err := s.pool.Query(ctx, scheduledIncomeRuleSelect+` WHERE active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.ScheduledIncome

	for rows.Next() {
		rule, err := scanIncomeRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

// IncomeRule returns one rule by id, or (nil, nil) when absent.
func (s *RuleStore) IncomeRule(ctx context.Context, id string) (*domain.ScheduledIncome, error) {
	rule, err := scanIncomeRule(s.pool.QueryRow(ctx, scheduledIncomeRuleSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return rule, err
}

func scanExpenseRule(row pgx.Row) (*domain.ScheduledExpense, error) {
	var (
		rule      domain.ScheduledExpense
		amount    decimal.Decimal
		frequency string
	)

	err := row.Scan(&rule.ID, &rule.OwnerID, &amount, &frequency, &rule.NextRun,
		&rule.ConceptID, &rule.PayeeID, &rule.PersonID,
		&rule.AccountID, &rule.PaymentMethodID, &rule.JobID, &rule.Active, &rule.CreatedAt)
	if err != nil {
		return nil, err
	}

	a, err := domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	rule.Amount = a
	rule.Frequency = domain.Frequency(frequency)

	return &rule, nil
}

func scanIncomeRule(row pgx.Row) (*domain.ScheduledIncome, error) {
	var (
		rule      domain.ScheduledIncome
		amount    decimal.Decimal
		frequency string
	)

	err := row.Scan(&rule.ID, &rule.OwnerID, &amount, &frequency, &rule.NextRun,
		&rule.ConceptID, &rule.ClientID, &rule.PersonID,
		&rule.AccountID, &rule.PaymentMethodID, &rule.JobID, &rule.Active, &rule.CreatedAt)
	if err != nil {
		return nil, err
	}

	a, err := domain.NewAmount(amount)
	if err != nil {
		return nil, err
	}

	rule.Amount = a
	rule.Frequency = domain.Frequency(frequency)

	return &rule, nil
}
