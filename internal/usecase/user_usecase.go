package usecase

import (
	"context"
	"time"

	"github.com/iho/hucha/internal/domain"
)

// UserDTO is the read model for users.
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput represents input for updating a user.
type UpdateUserInput struct {
	ID    string
	Name  string
	Email string
}

// UserUseCase handles user registration and profile updates. Email
// uniqueness is enforced by the storage layer and surfaces as a conflict.
type UserUseCase struct {
	create *CreatePipeline[CreateUserInput, domain.User]
	update *UpdatePipeline[UpdateUserInput, domain.User]
	get    *GetPipeline[UserDTO]
	list   *ListPipeline[UserDTO]
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(deps Deps, repo WriteRepository[domain.User], reader ReadRepository[UserDTO]) *UserUseCase {
	sort := SortSpec{
		Columns:      map[string]bool{"name": true, "email": true, "created_at": true},
		Default:      "name",
		DefaultOrder: SortAsc,
	}

	return &UserUseCase{
		create: &CreatePipeline[CreateUserInput, domain.User]{
			Deps:   deps,
			Entity: domain.EntityUser,
			Repo:   repo,
			Build: func(cmd CreateUserInput, id string, now time.Time) (*domain.User, []domain.Event, error) {
				u, err := domain.NewUser(id, cmd.Name, cmd.Email, now)
				return u, nil, err
			},
		},
		update: &UpdatePipeline[UpdateUserInput, domain.User]{
			Deps:     deps,
			Entity:   domain.EntityUser,
			Repo:     repo,
			TargetID: func(cmd UpdateUserInput) string { return cmd.ID },
			Apply: func(u *domain.User, cmd UpdateUserInput) ([]domain.Event, error) {
				return nil, u.Update(cmd.Name, cmd.Email)
			},
		},
		get: &GetPipeline[UserDTO]{
			Deps:   deps,
			Entity: domain.EntityUser,
			Fetch:  reader.GetByID,
		},
		list: &ListPipeline[UserDTO]{
			Deps:   deps,
			Entity: domain.EntityUser,
			Sort:   sort,
			Fetch:  reader.List,
		},
	}
}

// CreateUser registers a user and returns the generated id.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (string, error) {
	return uc.create.Handle(ctx, input)
}

// UpdateUser replaces the user's name and email.
func (uc *UserUseCase) UpdateUser(ctx context.Context, input UpdateUserInput) (string, error) {
	return uc.update.Handle(ctx, input)
}

// GetUser retrieves a user DTO by id.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*UserDTO, error) {
	return uc.get.Handle(ctx, id)
}

// ListUsers lists users with pagination, search and sorting.
func (uc *UserUseCase) ListUsers(ctx context.Context, q ListQuery) (*Page[UserDTO], error) {
	return uc.list.Handle(ctx, q)
}
