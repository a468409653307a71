package usecase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

func TestFailure_Kinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind usecase.FailureKind
	}{
		{
			name: "validation from domain error",
			err:  usecase.NewValidation(domain.ErrInvalidAmount),
			kind: usecase.FailureValidation,
		},
		{
			name: "validation with message",
			err:  usecase.NewValidationf("update is not supported for %s", domain.EntityTransfer),
			kind: usecase.FailureValidation,
		},
		{
			name: "not found",
			err:  usecase.NewNotFound("account %s does not exist", "acc-1"),
			kind: usecase.FailureNotFound,
		},
		{
			name: "conflict",
			err:  usecase.NewConflict("category named %q already exists", "Rent"),
			kind: usecase.FailureConflict,
		},
		{
			name: "unexpected",
			err:  usecase.NewUnexpected(errors.New("connection refused")),
			kind: usecase.FailureUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := usecase.AsFailure(tt.err)
			require.True(t, ok)
			require.Equal(t, tt.kind, f.Kind)
			require.NotEmpty(t, f.Error())
		})
	}
}

func TestFailure_PreservesCause(t *testing.T) {
	f := usecase.NewValidation(fmt.Errorf("%w: account acc-1", domain.ErrInsufficientFunds))

	require.ErrorIs(t, f, domain.ErrInsufficientFunds)
}

func TestAsFailure_ThroughWrapping(t *testing.T) {
	inner := usecase.NewNotFound("payee %s does not exist", "pay-9")
	wrapped := fmt.Errorf("checking references: %w", inner)

	f, ok := usecase.AsFailure(wrapped)
	require.True(t, ok)
	require.Equal(t, usecase.FailureNotFound, f.Kind)
}

func TestAsFailure_PlainError(t *testing.T) {
	_, ok := usecase.AsFailure(errors.New("boom"))
	require.False(t, ok)
}
