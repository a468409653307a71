package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountBalance is one account line on the dashboard.
type AccountBalance struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// CategoryTotal is one spending bucket on the dashboard.
type CategoryTotal struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// DashboardSummary aggregates one owner's finances for a calendar month.
type DashboardSummary struct {
	OwnerID       string           `json:"owner_id"`
	Month         string           `json:"month"`
	TotalIncome   decimal.Decimal  `json:"total_income"`
	TotalExpenses decimal.Decimal  `json:"total_expenses"`
	Net           decimal.Decimal  `json:"net"`
	Accounts      []AccountBalance `json:"accounts"`
	TopCategories []CategoryTotal  `json:"top_categories"`
}

// DashboardReader computes the summary from storage.
type DashboardReader interface {
	Summary(ctx context.Context, ownerID string, from, to time.Time) (*DashboardSummary, error)
}

// DashboardUseCase serves the monthly summary with cache-aside reads. Every
// balance-affecting write invalidates the "dashboard:" prefix, so a cached
// summary never outlives the movements it was computed from.
type DashboardUseCase struct {
	deps   Deps
	reader DashboardReader
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(deps Deps, reader DashboardReader) *DashboardUseCase {
	return &DashboardUseCase{deps: deps, reader: reader}
}

// GetSummary returns the summary for ownerID and month. Month must be in
// "2006-01" form; empty means the month containing now.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID, month string) (*DashboardSummary, error) {
	if ownerID == "" {
		return nil, NewValidationf("owner id is required")
	}

	now := time.Now().UTC()
	if month == "" {
		month = now.Format("2006-01")
	}

	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, NewValidationf("invalid month %q, expected YYYY-MM", month)
	}
	to := from.AddDate(0, 1, 0)

	key := fmt.Sprintf("dashboard:%s:%s", ownerID, month)

	if raw, err := uc.deps.Cache.Get(ctx, key); err == nil {
		var summary DashboardSummary
		if err := json.Unmarshal(raw, &summary); err == nil {
			return &summary, nil
		}
	}

	summary, err := uc.reader.Summary(ctx, ownerID, from, to)
	if err != nil {
		return nil, classify(err)
	}

	summary.OwnerID = ownerID
	summary.Month = month
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)

	if raw, err := json.Marshal(summary); err == nil {
		if err := uc.deps.Cache.Set(ctx, key, raw, uc.deps.CacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	return summary, nil
}
