package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
	"github.com/iho/hucha/internal/usecase/mocks"
)

type categoryFixture struct {
	uc      *usecase.CategoryUseCase
	repo    *mocks.MockWriteRepository[domain.Category]
	reader  *mocks.MockReadRepository[usecase.CategoryDTO]
	cache   *mocks.MockCache
	checker *mocks.MockReferenceChecker
	txMgr   *mocks.MockTransactionManager
}

func newCategoryFixture() *categoryFixture {
	f := &categoryFixture{
		repo:    mocks.NewMockWriteRepository(func(c *domain.Category) string { return c.ID }),
		reader:  mocks.NewMockReadRepository[usecase.CategoryDTO](),
		cache:   mocks.NewMockCache(),
		checker: mocks.NewMockReferenceChecker(),
		txMgr:   mocks.NewMockTransactionManager(),
	}

	deps := usecase.Deps{
		Tx:       f.txMgr,
		Cache:    f.cache,
		Events:   usecase.NewDispatcher(),
		IDGen:    &mocks.MockIDGenerator{},
		Checker:  f.checker,
		CacheTTL: time.Minute,
	}

	f.uc = usecase.NewCategoryUseCase(deps, f.repo, f.reader)

	return f
}

func TestCategoryUseCase_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newCategoryFixture()

		// Stale list pages must disappear after a create.
		f.cache.Set(ctx, "category:list:1:20:::name:asc", []byte("stale"), time.Minute)

		id, err := f.uc.CreateCategory(ctx, usecase.CreateCategoryInput{
			OwnerID: "user-1",
			Name:    "Groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if id == "" {
			t.Error("expected generated id")
		}

		if f.repo.Get(id) == nil {
			t.Error("expected category to be persisted")
		}

		if !f.txMgr.Tx.Committed {
			t.Error("expected transaction to commit")
		}

		if f.cache.Has("category:list:1:20:::name:asc") {
			t.Error("expected list cache to be invalidated")
		}
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		f := newCategoryFixture()
		f.checker.AddTaken("category", "user-1", "Groceries", "cat-existing")

		_, err := f.uc.CreateCategory(ctx, usecase.CreateCategoryInput{
			OwnerID: "user-1",
			Name:    "Groceries",
		})

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureConflict {
			t.Errorf("expected Conflict failure, got %v", err)
		}

		if f.repo.Len() != 0 {
			t.Error("nothing must be persisted on conflict")
		}
	})

	t.Run("invalid name is a validation failure", func(t *testing.T) {
		f := newCategoryFixture()

		_, err := f.uc.CreateCategory(ctx, usecase.CreateCategoryInput{
			OwnerID: "user-1",
			Name:    "   ",
		})

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}
	})

	t.Run("same name under another owner is allowed", func(t *testing.T) {
		f := newCategoryFixture()
		f.checker.AddTaken("category", "user-1", "Groceries", "cat-existing")

		_, err := f.uc.CreateCategory(ctx, usecase.CreateCategoryInput{
			OwnerID: "user-2",
			Name:    "Groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCategoryUseCase_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates point and list caches", func(t *testing.T) {
		f := newCategoryFixture()

		now := time.Now().UTC()
		cat, _ := domain.NewCategory("cat-1", "user-1", "Groceriez", "", now)
		f.repo.Put(cat)

		f.cache.Set(ctx, "category:cat-1", []byte("stale"), time.Minute)
		f.cache.Set(ctx, "category:list:1:20:::name:asc", []byte("stale"), time.Minute)

		_, err := f.uc.UpdateCategory(ctx, usecase.UpdateCategoryInput{
			ID:      "cat-1",
			OwnerID: "user-1",
			Name:    "Groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := f.repo.Get("cat-1"); got.Name.String() != "Groceries" {
			t.Errorf("expected renamed category, got %q", got.Name)
		}

		if f.cache.Has("category:cat-1") || f.cache.Has("category:list:1:20:::name:asc") {
			t.Error("expected caches to be invalidated")
		}
	})

	t.Run("renaming a missing category is not found", func(t *testing.T) {
		f := newCategoryFixture()

		_, err := f.uc.UpdateCategory(ctx, usecase.UpdateCategoryInput{
			ID:      "nope",
			OwnerID: "user-1",
			Name:    "Groceries",
		})

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureNotFound {
			t.Errorf("expected NotFound failure, got %v", err)
		}
	})

	t.Run("keeping its own name is not a conflict", func(t *testing.T) {
		f := newCategoryFixture()

		now := time.Now().UTC()
		cat, _ := domain.NewCategory("cat-1", "user-1", "Groceries", "", now)
		f.repo.Put(cat)
		f.checker.AddTaken("category", "user-1", "Groceries", "cat-1")

		_, err := f.uc.UpdateCategory(ctx, usecase.UpdateCategoryInput{
			ID:      "cat-1",
			OwnerID: "user-1",
			Name:    "Groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCategoryUseCase_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newCategoryFixture()

		now := time.Now().UTC()
		cat, _ := domain.NewCategory("cat-1", "user-1", "Groceries", "", now)
		f.repo.Put(cat)

		if err := f.uc.DeleteCategory(ctx, "cat-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.repo.Get("cat-1") != nil {
			t.Error("expected category to be removed")
		}
	})

	t.Run("missing id is not found", func(t *testing.T) {
		f := newCategoryFixture()

		err := f.uc.DeleteCategory(ctx, "nope")

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureNotFound {
			t.Errorf("expected NotFound failure, got %v", err)
		}
	})
}

func TestCategoryUseCase_GetCategory(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()

	f.reader.Put("cat-1", &usecase.CategoryDTO{ID: "cat-1", Name: "Groceries"})

	dto, err := f.uc.GetCategory(ctx, "cat-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.Name != "Groceries" {
		t.Errorf("expected Groceries, got %s", dto.Name)
	}

	if !f.cache.Has("category:cat-1") {
		t.Error("expected point lookup to prime the cache")
	}
}
