package postgres

import (
	"fmt"
	"strings"

	"github.com/iho/hucha/internal/usecase"
)

// filters builds the WHERE clause shared by the list queries: an owner
// filter plus an optional case-insensitive search over the given columns,
// any of which may match. Column names come from the callers, never from
// input.
func filters(q usecase.ListQuery, ownerCol string, searchCols ...string) (string, []any) {
	where := fmt.Sprintf("WHERE %s = $1", ownerCol)
	args := []any{q.OwnerID}

	if q.Search != "" && len(searchCols) > 0 {
		args = append(args, q.Search)

		matches := make([]string, len(searchCols))
		for i, col := range searchCols {
			matches[i] = fmt.Sprintf("%s ILIKE '%%' || $2 || '%%'", col)
		}
		where += " AND (" + strings.Join(matches, " OR ") + ")"
	}

	return where, args
}

// orderAndPage builds the ORDER BY / LIMIT / OFFSET tail. The sort column
// and order were normalized against a whitelist upstream; pagination values
// are clamped there too, so interpolation is safe. Ties on the sort value
// are broken by id so rows keep a stable position across pages.
func orderAndPage(q usecase.ListQuery, prefix string) string {
	dir := strings.ToUpper(q.SortOrder)

	order := fmt.Sprintf("ORDER BY %s%s %s", prefix, q.SortColumn, dir)
	if q.SortColumn != "id" {
		order += fmt.Sprintf(", %sid %s", prefix, dir)
	}

	return fmt.Sprintf("%s LIMIT %d OFFSET %d", order, q.PageSize, (q.Page-1)*q.PageSize)
}
