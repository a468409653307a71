package usecase

import (
	"context"

	"github.com/iho/hucha/internal/domain"
)

// DeletePipeline is the generic delete handler. The default path issues the
// delete by id alone, trusting the affected-rows count to surface NotFound
// without a read-before-write. Setting MarkDeleted or AfterDelete switches
// to the load-first path for entities whose deletion must reverse a side
// effect or release an external resource.
type DeletePipeline[E any] struct {
	Deps

	Entity string
	Repo   WriteRepository[E]

	// MarkDeleted collects the reversal events from the loaded entity
	// (e.g. undoing an income's balance effect). Optional.
	MarkDeleted func(entity *E) []domain.Event

	// AfterDelete runs post-commit with the loaded entity, for external
	// cleanup such as cancelling a recurring job. Optional.
	AfterDelete func(ctx context.Context, entity *E)

	InvalidatePrefixes []string
}

// Handle deletes the entity with the given id.
func (p *DeletePipeline[E]) Handle(ctx context.Context, id string) error {
	tx, err := p.Tx.Begin(ctx)
	if err != nil {
		return NewUnexpected(err)
	}
	defer tx.Rollback(ctx)

	var entity *E

	if p.MarkDeleted != nil || p.AfterDelete != nil {
		entity, err = p.Repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return classify(err)
		}

		if entity == nil {
			return NewNotFound("%s %s does not exist", p.Entity, id)
		}

		if p.MarkDeleted != nil {
			if err := p.Events.Dispatch(ctx, tx, p.MarkDeleted(entity)); err != nil {
				return classify(err)
			}
		}
	}

	rows, err := p.Repo.Delete(ctx, tx, id)
	if err != nil {
		return classify(err)
	}

	if rows == 0 {
		return NewNotFound("%s %s does not exist", p.Entity, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return NewUnexpected(err)
	}

	p.invalidateKey(ctx, p.Entity+":"+id)
	p.invalidate(ctx, append([]string{p.Entity + ":list:"}, p.InvalidatePrefixes...)...)

	if p.AfterDelete != nil && entity != nil {
		p.AfterDelete(ctx, entity)
	}

	return nil
}
