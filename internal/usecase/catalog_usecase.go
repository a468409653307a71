package usecase

import (
	"context"
	"time"

	"github.com/iho/hucha/internal/domain"
)

// NamedDTO is the read model shared by the catalog entities that consist of
// a per-owner unique name (clients, payees, persons, payment methods).
type NamedDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNamedInput represents input for creating a catalog entity.
type CreateNamedInput struct {
	OwnerID string
	Name    string
}

// UpdateNamedInput represents input for renaming a catalog entity.
type UpdateNamedInput struct {
	ID      string
	OwnerID string
	Name    string
}

// NamedUseCase instantiates the generic pipelines for a catalog entity.
// One algorithm serves all four entity types; only the aggregate type,
// entity name, factory and rename hook differ.
type NamedUseCase[E any] struct {
	create *CreatePipeline[CreateNamedInput, E]
	update *UpdatePipeline[UpdateNamedInput, E]
	remove *DeletePipeline[E]
	get    *GetPipeline[NamedDTO]
	list   *ListPipeline[NamedDTO]
}

func newNamedUseCase[E any](
	deps Deps,
	entity string,
	repo WriteRepository[E],
	reader ReadRepository[NamedDTO],
	build func(id, ownerID, name string, now time.Time) (*E, error),
	rename func(e *E, name string) error,
) *NamedUseCase[E] {
	return &NamedUseCase[E]{
		create: &CreatePipeline[CreateNamedInput, E]{
			Deps:   deps,
			Entity: entity,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateNamedInput) error {
				return CheckNameFree(ctx, checker, entity, cmd.OwnerID, cmd.Name, "")
			},
			Build: func(cmd CreateNamedInput, id string, now time.Time) (*E, []domain.Event, error) {
				e, err := build(id, cmd.OwnerID, cmd.Name, now)
				return e, nil, err
			},
		},
		update: &UpdatePipeline[UpdateNamedInput, E]{
			Deps:     deps,
			Entity:   entity,
			Repo:     repo,
			TargetID: func(cmd UpdateNamedInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateNamedInput) error {
				return CheckNameFree(ctx, checker, entity, cmd.OwnerID, cmd.Name, cmd.ID)
			},
			Apply: func(e *E, cmd UpdateNamedInput) ([]domain.Event, error) {
				return nil, rename(e, cmd.Name)
			},
		},
		remove: &DeletePipeline[E]{
			Deps:   deps,
			Entity: entity,
			Repo:   repo,
		},
		get: &GetPipeline[NamedDTO]{
			Deps:   deps,
			Entity: entity,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[NamedDTO]{
			Deps:   deps,
			Entity: entity,
			Sort: SortSpec{
				Columns:      map[string]bool{"name": true, "created_at": true},
				Default:      "name",
				DefaultOrder: SortAsc,
			},
			Fetch: reader.List,
		},
	}
}

// Create creates the entity and returns its id.
func (uc *NamedUseCase[E]) Create(ctx context.Context, input CreateNamedInput) (string, error) {
	return uc.create.Handle(ctx, input)
}

// Update renames the entity and returns its id.
func (uc *NamedUseCase[E]) Update(ctx context.Context, input UpdateNamedInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// Delete deletes the entity by id.
func (uc *NamedUseCase[E]) Delete(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// Get retrieves the entity's DTO by id.
func (uc *NamedUseCase[E]) Get(ctx context.Context, id string) (*NamedDTO, error) {
	return uc.get.Handle(ctx, id)
}

// List lists entities with pagination, search and sorting.
func (uc *NamedUseCase[E]) List(ctx context.Context, q ListQuery) (*Page[NamedDTO], error) {
	return uc.list.Handle(ctx, q)
}

// ClientUseCase handles clients.
type ClientUseCase = NamedUseCase[domain.Client]

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(deps Deps, repo WriteRepository[domain.Client], reader ReadRepository[NamedDTO]) *ClientUseCase {
	return newNamedUseCase(deps, domain.EntityClient, repo, reader, domain.NewClient,
		func(c *domain.Client, name string) error { return c.Update(name) })
}

// PayeeUseCase handles payees.
type PayeeUseCase = NamedUseCase[domain.Payee]

// NewPayeeUseCase creates a new PayeeUseCase.
func NewPayeeUseCase(deps Deps, repo WriteRepository[domain.Payee], reader ReadRepository[NamedDTO]) *PayeeUseCase {
	return newNamedUseCase(deps, domain.EntityPayee, repo, reader, domain.NewPayee,
		func(p *domain.Payee, name string) error { return p.Update(name) })
}

// PersonUseCase handles persons.
type PersonUseCase = NamedUseCase[domain.Person]

// NewPersonUseCase creates a new PersonUseCase.
func NewPersonUseCase(deps Deps, repo WriteRepository[domain.Person], reader ReadRepository[NamedDTO]) *PersonUseCase {
	return newNamedUseCase(deps, domain.EntityPerson, repo, reader, domain.NewPerson,
		func(p *domain.Person, name string) error { return p.Update(name) })
}

// PaymentMethodUseCase handles payment methods.
type PaymentMethodUseCase = NamedUseCase[domain.PaymentMethod]

// NewPaymentMethodUseCase creates a new PaymentMethodUseCase.
func NewPaymentMethodUseCase(deps Deps, repo WriteRepository[domain.PaymentMethod], reader ReadRepository[NamedDTO]) *PaymentMethodUseCase {
	return newNamedUseCase(deps, domain.EntityPaymentMethod, repo, reader, domain.NewPaymentMethod,
		func(p *domain.PaymentMethod, name string) error { return p.Update(name) })
}
