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

// CategoryRepository implements usecase.WriteRepository for categories.
type CategoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) Create(ctx context.Context, tx usecase.Transaction, category *domain.Category) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO categories (id, owner_id, name, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.OwnerID, category.Name.String(),
		category.Description.String(), category.CreatedAt)

	return mapWriteError(err, domain.EntityCategory)
}

func (r *CategoryRepository) Update(ctx context.Context, tx usecase.Transaction, category *domain.Category) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		category.ID, category.Name.String(), category.Description.String())
	if err != nil {
		return mapWriteError(err, domain.EntityCategory)
	}

	return requireUpdated(tag, domain.EntityCategory)
}

func (r *CategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityCategory)
	}

	return tag.RowsAffected(), nil
}

func (r *CategoryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Category, error) {
	var (
		category          domain.Category
		name, description string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, name, description, created_at
		 FROM categories WHERE id = $1 FOR UPDATE`, id).
		Scan(&category.ID, &category.OwnerID, &name, &description, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	category.Name = domain.Name(name)
	category.Description = domain.Description(description)

	return &category, nil
}

// CategoryReadRepository implements usecase.ReadRepository[CategoryDTO].
type CategoryReadRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryReadRepository creates a new CategoryReadRepository.
func NewCategoryReadRepository(pool *pgxpool.Pool) *CategoryReadRepository {
	return &CategoryReadRepository{pool: pool}
}

func (r *CategoryReadRepository) GetByID(ctx context.Context, id string) (*usecase.CategoryDTO, error) {
	var dto usecase.CategoryDTO

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&dto.ID, &dto.Name, &dto.Description, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *CategoryReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.CategoryDTO], error) {
	where, args := filters(q, "owner_id", "name")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM categories %s", where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT id, name, description, created_at FROM categories %s %s",
			where, orderAndPage(q, "")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.CategoryDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.CategoryDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.Description, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.CategoryDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
