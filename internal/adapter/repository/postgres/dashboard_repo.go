package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hucha/internal/usecase"
)

const topCategoryLimit = 5

// DashboardReader computes the monthly summary directly from storage.
// Movement totals cover [from, to); account balances are current.
//
// The queries run inside a single repeatable-read transaction so the totals
// and balances describe one snapshot. Serialization failures are retried.
type DashboardReader struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewDashboardReader creates a new DashboardReader.
func NewDashboardReader(pool *pgxpool.Pool) *DashboardReader {
	return &DashboardReader{pool: pool, retrier: NewRetrier()}
}

func (r *DashboardReader) Summary(ctx context.Context, ownerID string, from, to time.Time) (*usecase.DashboardSummary, error) {
	var summary *usecase.DashboardSummary

	err := r.retrier.Retry(ctx, func() error {
		var err error
		summary, err = r.summaryTx(ctx, ownerID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *DashboardReader) summaryTx(ctx context.Context, ownerID string, from, to time.Time) (*usecase.DashboardSummary, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var summary usecase.DashboardSummary

	err = tx.QueryRow(ctx,
		`SELECT
		   coalesce((SELECT sum(amount) FROM incomes
		             WHERE owner_id = $1 AND date >= $2 AND date < $3), 0),
		   coalesce((SELECT sum(amount) FROM expenses
		             WHERE owner_id = $1 AND date >= $2 AND date < $3), 0)`,
		ownerID, from, to).
		Scan(&summary.TotalIncome, &summary.TotalExpenses)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT id, name, balance FROM accounts
		 WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var acc usecase.AccountBalance
		if err := rows.Scan(&acc.AccountID, &acc.Name, &acc.Balance); err != nil {
			return nil, err
		}
		summary.Accounts = append(summary.Accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx,
		`SELECT cat.id, cat.name, sum(e.amount) AS total
		 FROM expenses e
		 JOIN concepts c ON c.id = e.concept_id
		 JOIN categories cat ON cat.id = c.category_id
		 WHERE e.owner_id = $1 AND e.date >= $2 AND e.date < $3
		 GROUP BY cat.id, cat.name
		 ORDER BY total DESC
		 LIMIT $4`, ownerID, from, to, topCategoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat usecase.CategoryTotal
		if err := rows.Scan(&cat.CategoryID, &cat.Name, &cat.Total); err != nil {
			return nil, err
		}
		summary.TopCategories = append(summary.TopCategories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &summary, nil
}
