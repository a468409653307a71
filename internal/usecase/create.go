package usecase

import (
	"context"
	"time"

	"github.com/iho/hucha/internal/domain"
)

// CreatePipeline is the generic create handler: validate references, build
// the aggregate through its factory, persist, apply raised events in the
// same transaction, then invalidate list caches. Entity-specific behavior
// is supplied as strategy functions, not inheritance.
type CreatePipeline[C any, E any] struct {
	Deps

	// Entity is the type name used for cache keys and failure messages.
	Entity string
	Repo   WriteRepository[E]

	// CheckRefs validates foreign references and uniqueness before any
	// write. Optional.
	CheckRefs func(ctx context.Context, checker ReferenceChecker, cmd C) error

	// Build constructs the aggregate via its factory. Domain validation
	// errors are converted to Validation failures here and never escape.
	Build func(cmd C, id string, now time.Time) (*E, []domain.Event, error)

	// InvalidatePrefixes lists extra cache prefixes stale after a create
	// (e.g. the dashboard when a movement changes balances).
	InvalidatePrefixes []string
}

// Handle runs the pipeline and returns the new entity's id.
func (p *CreatePipeline[C, E]) Handle(ctx context.Context, cmd C) (string, error) {
	if p.CheckRefs != nil {
		if err := p.CheckRefs(ctx, p.Checker, cmd); err != nil {
			return "", classify(err)
		}
	}

	id := p.IDGen.Generate()

	entity, events, err := p.Build(cmd, id, time.Now().UTC())
	if err != nil {
		return "", asValidation(err)
	}

	tx, err := p.Tx.Begin(ctx)
	if err != nil {
		return "", NewUnexpected(err)
	}
	defer tx.Rollback(ctx)

	if err := p.Repo.Create(ctx, tx, entity); err != nil {
		return "", classify(err)
	}

	if err := p.Events.Dispatch(ctx, tx, events); err != nil {
		return "", classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", NewUnexpected(err)
	}

	// A new row changes list contents; the point-lookup key for a fresh id
	// cannot exist yet.
	p.invalidate(ctx, append([]string{p.Entity + ":list:"}, p.InvalidatePrefixes...)...)

	return id, nil
}
