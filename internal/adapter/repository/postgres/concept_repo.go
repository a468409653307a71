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

// ConceptRepository implements usecase.WriteRepository for concepts.
type ConceptRepository struct{}

// NewConceptRepository creates a new ConceptRepository.
func NewConceptRepository() *ConceptRepository {
	return &ConceptRepository{}
}

func (r *ConceptRepository) Create(ctx context.Context, tx usecase.Transaction, concept *domain.Concept) error {
	_, err := txOf(tx).Exec(ctx,
		`INSERT INTO concepts (id, owner_id, name, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		concept.ID, concept.OwnerID, concept.Name.String(), concept.CategoryID, concept.CreatedAt)

	return mapWriteError(err, domain.EntityConcept)
}

func (r *ConceptRepository) Update(ctx context.Context, tx usecase.Transaction, concept *domain.Concept) error {
	tag, err := txOf(tx).Exec(ctx,
		`UPDATE concepts SET name = $2, category_id = $3 WHERE id = $1`,
		concept.ID, concept.Name.String(), concept.CategoryID)
	if err != nil {
		return mapWriteError(err, domain.EntityConcept)
	}

	return requireUpdated(tag, domain.EntityConcept)
}

func (r *ConceptRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	tag, err := txOf(tx).Exec(ctx, `DELETE FROM concepts WHERE id = $1`, id)
	if err != nil {
		return 0, mapWriteError(err, domain.EntityConcept)
	}

	return tag.RowsAffected(), nil
}

func (r *ConceptRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Concept, error) {
	var (
		concept domain.Concept
		name    string
	)

	err := txOf(tx).QueryRow(ctx,
		`SELECT id, owner_id, name, category_id, created_at
		 FROM concepts WHERE id = $1 FOR UPDATE`, id).
		Scan(&concept.ID, &concept.OwnerID, &name, &concept.CategoryID, &concept.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	concept.Name = domain.Name(name)

	return &concept, nil
}

// ConceptReadRepository implements usecase.ReadRepository[ConceptDTO],
// resolving the category name with a join.
type ConceptReadRepository struct {
	pool *pgxpool.Pool
}

// NewConceptReadRepository creates a new ConceptReadRepository.
func NewConceptReadRepository(pool *pgxpool.Pool) *ConceptReadRepository {
	return &ConceptReadRepository{pool: pool}
}

func (r *ConceptReadRepository) GetByID(ctx context.Context, id string) (*usecase.ConceptDTO, error) {
	var dto usecase.ConceptDTO

	err := r.pool.QueryRow(ctx,
		`SELECT c.id, c.name, c.category_id, cat.name, c.created_at
		 FROM concepts c
		 JOIN categories cat ON cat.id = c.category_id
		 WHERE c.id = $1`, id).
		Scan(&dto.ID, &dto.Name, &dto.CategoryID, &dto.CategoryName, &dto.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &dto, nil
}

func (r *ConceptReadRepository) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[usecase.ConceptDTO], error) {
	where, args := filters(q, "c.owner_id", "c.name")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM concepts c %s", where), args...).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT c.id, c.name, c.category_id, cat.name, c.created_at
			 FROM concepts c
			 JOIN categories cat ON cat.id = c.category_id
			 %s %s`, where, orderAndPage(q, "c.")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]usecase.ConceptDTO, 0, q.PageSize)
	for rows.Next() {
		var dto usecase.ConceptDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.CategoryID, &dto.CategoryName, &dto.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &usecase.Page[usecase.ConceptDTO]{
		Items:      items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}
