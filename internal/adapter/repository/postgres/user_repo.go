package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// UserRepository implements usecase.WriteRepository for users. The unique
// index on email surfaces duplicate registrations as conflicts.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name.String(), user.Email.String(), user.CreatedAt)

	return mapWriteError(err, domain.EntityUser)
}

func (r *UserRepository) Update(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1`,
		user.ID, user.Name.String(), user.Email.String())
	if err != nil {
		return mapWriteError(err, domain.EntityUser)
	}

	return requireUpdated(tag, domain.EntityUser)
}

func (r *UserRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityUser)
	}

	return tag.RowsAffected(), nil
}

func (r *UserRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.User, error) {
	var (
		user        domain.User
		name, email string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1 FOR UPDATE`, id).
		Scan(&user.ID, &name, &email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	user.Name = domain.Name(name)
	user.Email = domain.Email(email)

	return &user, nil
}

// UserReadRepository implements usecase.ReadRepository[UserDTO].
type UserReadRepository struct {
	pool *pgxpool.Pool
}

// NewUserReadRepository creates a new UserReadRepository.
func NewUserReadRepository(pool *pgxpool.Pool) *UserReadRepository {
	return &UserReadRepository{pool: pool}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*usecase.UserDTO, error) {
	var dto usecase.UserDTO

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, id).
		Scan(&dto.ID, &dto.Name, &dto.Email, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

// List returns one page of users. Users have no owner; the owner filter is
// skipped and search covers name and email.
func (r *UserReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.UserDTO], error) {
	where := ""
	args := []any{}

	if q.Search != "" {
		where = "WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'"
		args = append(args, q.Search)
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM users %s", where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT id, name, email, created_at FROM users %s %s",
			where, orderAndPage(q, "")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.UserDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.UserDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.Email, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.UserDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
