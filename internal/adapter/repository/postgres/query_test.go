package postgres

import (
	"testing"

	"github.com/iho/hucha/internal/usecase"
)

func TestFiltersOwnerOnly(t *testing.T) {
	q := usecase.ListQuery{OwnerID: "u1"}

	where, args := filters(q, "a.owner_id", "a.name")

	if where != "WHERE a.owner_id = $1" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestFiltersWithSearch(t *testing.T) {
	q := usecase.ListQuery{OwnerID: "u1", Search: "groceries"}

	where, args := filters(q, "e.owner_id", "e.description")

	want := "WHERE e.owner_id = $1 AND (e.description ILIKE '%' || $2 || '%')"
	if where != want {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 2 || args[1] != "groceries" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestFiltersSearchAcrossColumns(t *testing.T) {
	q := usecase.ListQuery{OwnerID: "u1", Search: "rent"}

	where, args := filters(q, "e.owner_id", "e.description", "py.name", "c.name")

	want := "WHERE e.owner_id = $1 AND (e.description ILIKE '%' || $2 || '%'" +
		" OR py.name ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%')"
	if where != want {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("search term must bind once, got %d args", len(args))
	}
}

func TestOrderAndPage(t *testing.T) {
	q := usecase.ListQuery{Page: 3, PageSize: 20, SortColumn: "date", SortOrder: "desc"}

	got := orderAndPage(q, "e.")

	want := "ORDER BY e.date DESC, e.id DESC LIMIT 20 OFFSET 40"
	if got != want {
		t.Fatalf("unexpected tail: %q", got)
	}
}

func TestOrderAndPageFirstPage(t *testing.T) {
	q := usecase.ListQuery{Page: 1, PageSize: 50, SortColumn: "name", SortOrder: "asc"}

	got := orderAndPage(q, "")

	want := "ORDER BY name ASC, id ASC LIMIT 50 OFFSET 0"
	if got != want {
		t.Fatalf("unexpected tail: %q", got)
	}
}

func TestOrderAndPageBreaksTiesByID(t *testing.T) {
	// Dates at day granularity tie constantly; without the id tie-break
	// rows could repeat or vanish across pages.
	q := usecase.ListQuery{Page: 1, PageSize: 10, SortColumn: "date", SortOrder: "desc"}

	got := orderAndPage(q, "e.")

	want := "ORDER BY e.date DESC, e.id DESC LIMIT 10 OFFSET 0"
	if got != want {
		t.Fatalf("paged ORDER BY must break ties by id, got %q", got)
	}
}

func TestOrderAndPageByIDHasNoDuplicateTieBreak(t *testing.T) {
	q := usecase.ListQuery{Page: 1, PageSize: 10, SortColumn: "id", SortOrder: "asc"}

	got := orderAndPage(q, "t.")

	want := "ORDER BY t.id ASC LIMIT 10 OFFSET 0"
	if got != want {
		t.Fatalf("unexpected tail: %q", got)
	}
}
