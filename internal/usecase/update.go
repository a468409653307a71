package usecase

import (
	"context"

	"github.com/iho/hucha/internal/domain"
)

// UpdatePipeline is the generic update handler: load with a row lock, apply
// entity-specific changes, persist, dispatch raised events, invalidate the
// point and list caches. It returns the updated id, not a DTO; callers
// re-fetch if they need fresh data.
type UpdatePipeline[C any, E any] struct {
	Deps

	Entity string
	Repo   WriteRepository[E]

	// TargetID extracts the id of the entity being updated.
	TargetID func(cmd C) string

	// CheckRefs validates foreign references and uniqueness before the
	// transaction opens. Optional.
	CheckRefs func(ctx context.Context, checker ReferenceChecker, cmd C) error

	// Apply mutates the loaded entity through its domain Update method.
	// Value-object errors become Validation failures, as in create.
	Apply func(entity *E, cmd C) ([]domain.Event, error)

	InvalidatePrefixes []string
}

// Handle runs the pipeline and returns the updated entity's id.
func (p *UpdatePipeline[C, E]) Handle(ctx context.Context, cmd C) (string, error) {
	if p.CheckRefs != nil {
		if err := p.CheckRefs(ctx, p.Checker, cmd); err != nil {
			return "", classify(err)
		}
	}

	id := p.TargetID(cmd)

	tx, err := p.Tx.Begin(ctx)
	if err != nil {
		return "", NewUnexpected(err)
	}
	defer tx.Rollback(ctx)

	entity, err := p.Repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return "", classify(err)
	}

	if entity == nil {
		return "", NewNotFound("%s %s does not exist", p.Entity, id)
	}

	events, err := p.Apply(entity, cmd)
	if err != nil {
		return "", asValidation(err)
	}

	if err := p.Repo.Update(ctx, tx, entity); err != nil {
		return "", classify(err)
	}

	if err := p.Events.Dispatch(ctx, tx, events); err != nil {
		return "", classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", NewUnexpected(err)
	}

	p.invalidateKey(ctx, p.Entity+":"+id)
	p.invalidate(ctx, append([]string{p.Entity + ":list:"}, p.InvalidatePrefixes...)...)

	return id, nil
}
