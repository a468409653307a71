package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/infrastructure/metrics"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations. Set is last-writer-wins and Delete is
// idempotent; the cache is always re-derivable from the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// JobScheduler is the recurring-execution collaborator. The core only
// persists the generated job id; running the schedule is the adapter's
// business.
type JobScheduler interface {
	GenerateJobID() string
	Cancel(ctx context.Context, jobID string) error
}

// WriteRepository defines per-entity persistence. GetByIDForUpdate returns
// (nil, nil) when the row is absent. Delete reports rows affected so the
// pipeline can surface NotFound without a read-before-write.
type WriteRepository[E any] interface {
	Create(ctx context.Context, tx Transaction, entity *E) error
	Update(ctx context.Context, tx Transaction, entity *E) error
	Delete(ctx context.Context, tx Transaction, id string) (int64, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*E, error)
}

// AccountRepository extends the generic write contract with the balance
// update used by event appliers inside an open transaction.
type AccountRepository interface {
	WriteRepository[domain.Account]
	UpdateBalance(ctx context.Context, tx Transaction, account *domain.Account) error
}

// ReadRepository defines the DTO-projecting query path. GetByID returns
// (nil, nil) when no row matches.
type ReadRepository[D any] interface {
	GetByID(ctx context.Context, id string) (*D, error)
	List(ctx context.Context, q ListQuery) (*Page[D], error)
}

// ReferenceChecker issues minimal existence probes for cross-aggregate
// checks. Safe for concurrent use.
type ReferenceChecker interface {
	Exists(ctx context.Context, entity, id string) (bool, error)
	NameTaken(ctx context.Context, entity, ownerID, name, excludeID string) (bool, error)
}

// Deps bundles the collaborators shared by every pipeline. Metrics is
// optional; a nil value disables instrumentation.
type Deps struct {
	Tx       TransactionManager
	Cache    Cache
	Events   *Dispatcher
	IDGen    IDGenerator
	Checker  ReferenceChecker
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
}
