package usecase

import (
	"context"
	"time"

	"github.com/iho/hucha/internal/domain"
)

// CategoryDTO is the read model for categories.
type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	OwnerID     string
	Name        string
	Description string
}

// UpdateCategoryInput represents input for updating a category.
type UpdateCategoryInput struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
}

// CategoryUseCase instantiates the generic pipelines for categories.
type CategoryUseCase struct {
	create *CreatePipeline[CreateCategoryInput, domain.Category]
	update *UpdatePipeline[UpdateCategoryInput, domain.Category]
	remove *DeletePipeline[domain.Category]
	get    *GetPipeline[CategoryDTO]
	list   *ListPipeline[CategoryDTO]
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(deps Deps, repo WriteRepository[domain.Category], reader ReadRepository[CategoryDTO]) *CategoryUseCase {
	return &CategoryUseCase{
		create: &CreatePipeline[CreateCategoryInput, domain.Category]{
			Deps:   deps,
			Entity: domain.EntityCategory,
			Repo:   repo,
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd CreateCategoryInput) error {
				return CheckNameFree(ctx, checker, domain.EntityCategory, cmd.OwnerID, cmd.Name, "")
			},
			Build: func(cmd CreateCategoryInput, id string, now time.Time) (*domain.Category, []domain.Event, error) {
				c, err := domain.NewCategory(id, cmd.OwnerID, cmd.Name, cmd.Description, now)
				return c, nil, err
			},
		},
		update: &UpdatePipeline[UpdateCategoryInput, domain.Category]{
			Deps:     deps,
			Entity:   domain.EntityCategory,
			Repo:     repo,
			TargetID: func(cmd UpdateCategoryInput) string { return cmd.ID },
			CheckRefs: func(ctx context.Context, checker ReferenceChecker, cmd UpdateCategoryInput) error {
				return CheckNameFree(ctx, checker, domain.EntityCategory, cmd.OwnerID, cmd.Name, cmd.ID)
			},
			Apply: func(c *domain.Category, cmd UpdateCategoryInput) ([]domain.Event, error) {
				return nil, c.Update(cmd.Name, cmd.Description)
			},
		},
		remove: &DeletePipeline[domain.Category]{
			Deps:   deps,
			Entity: domain.EntityCategory,
			Repo:   repo,
		},
		get: &GetPipeline[CategoryDTO]{
			Deps:   deps,
			Entity: domain.EntityCategory,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[CategoryDTO]{
			Deps:   deps,
			Entity: domain.EntityCategory,
			Sort: SortSpec{
				Columns:      map[string]bool{"name": true, "created_at": true},
				Default:      "name",
				DefaultOrder: SortAsc,
			},
			Fetch: reader.List,
		},
	}
}

// CreateCategory creates a category and returns its id.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (string, error) {
	return uc.create.Handle(ctx, input)
}

// UpdateCategory updates a category and returns its id.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// DeleteCategory deletes a category by id.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.remove.Handle(ctx, id)
}

// GetCategory retrieves a category DTO by id.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*CategoryDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListCategories lists categories with pagination, search and sorting.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, q ListQuery) (*Page[CategoryDTO], error) {
	return uc.list.Handle(ctx, q)
}
