package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		expectError bool
	}{
		{
			name: "plain name",
			raw:  "Groceries",
			want: "Groceries",
		},
		{
			name: "trims whitespace",
			raw:  "  Rent  ",
			want: "Rent",
		},
		{
			name:        "empty",
			raw:         "",
			expectError: true,
		},
		{
			name:        "whitespace only",
			raw:         "   ",
			expectError: true,
		},
		{
			name: "max length",
			raw:  strings.Repeat("a", MaxNameLength),
			want: strings.Repeat("a", MaxNameLength),
		},
		{
			name:        "over max length",
			raw:         strings.Repeat("a", MaxNameLength+1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewName(tt.raw)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidName) {
					t.Errorf("expected ErrInvalidName, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.String())
			}
		})
	}
}

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name        string
		value       decimal.Decimal
		errorType   error
		expectError bool
	}{
		{
			name:  "positive",
			value: decimal.NewFromInt(100),
		},
		{
			name:  "fractional cents",
			value: decimal.RequireFromString("0.01"),
		},
		{
			name:        "zero",
			value:       decimal.Zero,
			expectError: true,
			errorType:   ErrInvalidAmount,
		},
		{
			name:        "negative",
			value:       decimal.NewFromInt(-5),
			expectError: true,
			errorType:   ErrInvalidAmount,
		},
		{
			name:  "at cap",
			value: decimal.RequireFromString(MaxAmount),
		},
		{
			name:        "over cap",
			value:       decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1)),
			expectError: true,
			errorType:   ErrAmountTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAmount(tt.value)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Decimal().Equal(tt.value) {
				t.Errorf("expected %s, got %s", tt.value, got.Decimal())
			}
		})
	}
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		expectError bool
	}{
		{
			name: "plain email",
			raw:  "ana@example.com",
			want: "ana@example.com",
		},
		{
			name: "lowercases and trims",
			raw:  "  Ana@Example.COM ",
			want: "ana@example.com",
		},
		{
			name:        "missing at sign",
			raw:         "ana.example.com",
			expectError: true,
		},
		{
			name:        "missing domain",
			raw:         "ana@",
			expectError: true,
		},
		{
			name:        "empty",
			raw:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEmail(tt.raw)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidEmail) {
					t.Errorf("expected ErrInvalidEmail, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.String())
			}
		})
	}
}

func TestNewDescription(t *testing.T) {
	t.Run("empty is allowed", func(t *testing.T) {
		d, err := NewDescription("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != "" {
			t.Errorf("expected empty, got %q", d.String())
		}
	})

	t.Run("over max length", func(t *testing.T) {
		_, err := NewDescription(strings.Repeat("x", MaxDescriptionLength+1))
		if !errors.Is(err, ErrInvalidDescription) {
			t.Errorf("expected ErrInvalidDescription, got %v", err)
		}
	})
}

func TestNewFrequency(t *testing.T) {
	for _, raw := range []string{"daily", "weekly", "monthly", "yearly", " Monthly "} {
		if _, err := NewFrequency(raw); err != nil {
			t.Errorf("expected %q to be valid, got %v", raw, err)
		}
	}

	for _, raw := range []string{"", "hourly", "fortnightly"} {
		if _, err := NewFrequency(raw); !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("expected %q to be invalid", raw)
		}
	}
}
