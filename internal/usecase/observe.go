package usecase

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// Nil-safe metric hooks shared by the pipelines and use cases.

func (d Deps) observeCacheHit(entity string) {
	if d.Metrics != nil {
		d.Metrics.CacheHits.WithLabelValues(entity).Inc()
	}
}

func (d Deps) observeCacheMiss(entity string) {
	if d.Metrics != nil {
		d.Metrics.CacheMisses.WithLabelValues(entity).Inc()
	}
}

func (d Deps) observeAccountCreated() {
	if d.Metrics != nil {
		d.Metrics.AccountsCreated.Inc()
	}
}

func (d Deps) observeMovement(kind string, amount decimal.Decimal) {
	if d.Metrics == nil {
		return
	}

	switch kind {
	case domain.EntityExpense:
		d.Metrics.ExpensesRegistered.Inc()
	case domain.EntityIncome:
		d.Metrics.IncomesRegistered.Inc()
	case domain.EntityTransfer:
		d.Metrics.TransfersRegistered.Inc()
	}

	value, _ := amount.Float64()
	d.Metrics.MovementAmount.WithLabelValues(kind).Observe(value)
}

func (d Deps) observeMovementError(kind string, err error) {
	if d.Metrics != nil {
		d.Metrics.MovementErrors.WithLabelValues(kind, errorKind(err)).Inc()
	}
}

func errorKind(err error) string {
	failure, ok := AsFailure(err)
	if !ok {
		return "unexpected"
	}

	switch failure.Kind {
	case FailureValidation:
		return "validation"
	case FailureNotFound:
		return "not_found"
	case FailureConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// invalidate removes cache prefixes best-effort. The cache is re-derivable
// and TTL-bounded, so a failed invalidation is logged, not fatal.
func (d Deps) invalidate(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := d.Cache.DeleteByPrefix(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
			continue
		}

		if d.Metrics != nil {
			d.Metrics.CacheInvalidations.WithLabelValues(prefix).Inc()
		}
	}
}

// invalidateKey removes a single cache key best-effort.
func (d Deps) invalidateKey(ctx context.Context, key string) {
	if err := d.Cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
