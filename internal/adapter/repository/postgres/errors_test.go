package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/hucha/internal/usecase"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind usecase.FailureKind
	}{
		{
			name:     "unique violation becomes conflict",
			err:      &pgconn.PgError{Code: pgErrUniqueViolation},
			wantKind: usecase.FailureConflict,
		},
		{
			name:     "foreign key violation becomes conflict",
			err:      &pgconn.PgError{Code: pgErrForeignKeyViolation},
			wantKind: usecase.FailureConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapWriteError(tt.err, "account")

			failure, ok := usecase.AsFailure(got)
			if !ok {
				t.Fatalf("expected a typed failure, got %v", got)
			}
			if failure.Kind != tt.wantKind {
				t.Fatalf("expected kind %v, got %v", tt.wantKind, failure.Kind)
			}
		})
	}
}

func TestRequireUpdated(t *testing.T) {
	if err := requireUpdated(pgconn.NewCommandTag("UPDATE 1"), "account"); err != nil {
		t.Fatalf("expected nil for an update that matched, got %v", err)
	}

	err := requireUpdated(pgconn.NewCommandTag("UPDATE 0"), "account")
	failure, ok := usecase.AsFailure(err)
	if !ok {
		t.Fatalf("expected a typed failure, got %v", err)
	}
	if failure.Kind != usecase.FailureConflict {
		t.Fatalf("an update matching no row must be a conflict, got %v", failure.Kind)
	}
}

func TestMapWriteErrorPassesThroughUnknown(t *testing.T) {
	raw := errors.New("connection reset")
	if got := mapWriteError(raw, "account"); !errors.Is(got, raw) {
		t.Fatalf("expected raw error back, got %v", got)
	}

	if got := mapWriteError(nil, "account"); got != nil {
		t.Fatalf("expected nil for nil error, got %v", got)
	}
}
