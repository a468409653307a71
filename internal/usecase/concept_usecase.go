package usecase

import (
	"context"
	"time"

	"github.com/iho/hucha/internal/domain"
)

// ConceptDTO is the read model for concepts, with the category name
// resolved server-side.
type ConceptDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateConceptInput represents input for creating a concept.
type CreateConceptInput struct {
	OwnerID    string
	Name       string
	CategoryID string
}

// UpdateConceptInput represents input for updating a concept.
type UpdateConceptInput struct {
	ID         string
	OwnerID    string
	Name       string
	CategoryID string
}

// ConceptUseCase instantiates the generic pipelines for concepts. The
// category reference is validated on both create and update.
type ConceptUseCase struct {
	create *CreatePipeline[CreateConceptInput, domain.Concept]
	update *UpdatePipeline[UpdateConceptInput, domain.Concept]
	remove *DeletePipeline[domain.Concept]
	get    *GetPipeline[ConceptDTO]
	list   *ListPipeline[ConceptDTO]
}

// NewConceptUseCase creates a new ConceptUseCase.
func NewConceptUseCase(deps Deps, repo WriteRepository[domain.Concept], reader ReadRepository[ConceptDTO]) *ConceptUseCase {
	return &ConceptUseCase{
		create: &CreatePipeline[CreateConceptInput, domain.Concept]{
			Deps:   deps,
			Entity: domain.EntityConcept,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateConceptInput) error {
				return CheckRefs(ctx, checker, Ref{Entity: domain.EntityCategory, ID: cmd.CategoryID})
			},
			Build: func(cmd CreateConceptInput, id string, now time.Time) (*domain.Concept, []domain.Event, error) {
				c, err := domain.NewConcept(id, cmd.OwnerID, cmd.Name, cmd.CategoryID, now)
				return c, nil, err
			},
		},
		update: &UpdatePipeline[UpdateConceptInput, domain.Concept]{
			Deps:     deps,
			Entity:   domain.EntityConcept,
			Repo:     repo,
			TargetID: func(cmd UpdateConceptInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateConceptInput) error {
				return CheckRefs(ctx, checker, Ref{Entity: domain.EntityCategory, ID: cmd.CategoryID})
			},
			Apply: func(c *domain.Concept, cmd UpdateConceptInput) ([]domain.Event, error) {
				return nil, c.Update(cmd.Name, cmd.CategoryID)
			},
		},
		remove: &DeletePipeline[domain.Concept]{
			Deps:   deps,
			Entity: domain.EntityConcept,
			Repo:   repo,
		},
		get: &GetPipeline[ConceptDTO]{
			Deps:   deps,
			Entity: domain.EntityConcept,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[ConceptDTO]{
			Deps:   deps,
			Entity: domain.EntityConcept,
			Sort: SortSpec{
				Columns:      map[string]bool{"name": true, "created_at": true},
				Default:      "name",
				DefaultOrder: SortAsc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateConcept creates a concept and returns its id.
func (uc *ConceptUseCase) CreateConcept(ctx context.Context, input CreateConceptInput) (string, error) {
	return uc.create.Handle(ctx, input)
}

// UpdateConcept updates a concept and returns its id.
func (uc *ConceptUseCase) UpdateConcept(ctx context.Context, input UpdateConceptInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// DeleteConcept deletes a concept by id.
func (uc *ConceptUseCase) DeleteConcept(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetConcept retrieves a concept DTO by id.
func (uc *ConceptUseCase) GetConcept(ctx context.Context, id string) (*ConceptDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListConcepts lists concepts with pagination, search and sorting.
func (uc *ConceptUseCase) ListConcepts(ctx context.Context, q ListQuery) (*Page[ConceptDTO], error) {
	return uc.list.Handle(ctx, q)
}
