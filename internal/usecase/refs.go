package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ref names a foreign reference carried by a command.
type Ref struct {
	Entity string
	ID     string
}

// CheckRefs probes every reference in parallel. The probes are pure reads
// with no shared state, so concurrency is safe; a missing reference yields
// a NotFound failure naming it, and nothing is persisted afterwards.
func CheckRefs(ctx context.Context, checker ReferenceChecker, refs ...Ref) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, ref := range refs {
		g.Go(func() error {
			ok, err := checker.Exists(ctx, ref.Entity, ref.ID)
			if err != nil {
				return NewUnexpected(err)
			}

			if !ok {
				return NewNotFound("%s %s does not exist", ref.Entity, ref.ID)
			}

			return nil
		})
	}

	return g.Wait()
}

// CheckNameFree probes per-owner name uniqueness, excluding the entity
// itself on update. A taken name yields a Conflict failure.
func CheckNameFree(ctx context.Context, checker ReferenceChecker, entity, ownerID, name, excludeID string) error {
	taken, err := checker.NameTaken(ctx, entity, ownerID, name, excludeID)
	if err != nil {
		return NewUnexpected(err)
	}

	if taken {
		return NewConflict("%s named %q already exists", entity, name)
	}

	return nil
}
