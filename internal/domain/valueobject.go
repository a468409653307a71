package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	MaxAmount            = "1000000000000" // 1 trillion
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Name is a validated, trimmed display name.
type Name string

// NewName creates a Name from a raw string.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(trimmed) > MaxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return Name(trimmed), nil
}

// String returns the raw name.
func (n Name) String() string {
	return string(n)
}

// Amount is a strictly positive monetary amount.
type Amount struct {
	value decimal.Decimal
}

// NewAmount creates an Amount from a decimal.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return Amount{}, ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if value.GreaterThan(maxAmount) {
		return Amount{}, fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return Amount{value: value}, nil
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// String returns the amount in decimal notation.
func (a Amount) String() string {
	return a.value.String()
}

// Email is a validated, lowercased email address.
type Email string

// NewEmail creates an Email from a raw string.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if !emailRegex.MatchString(normalized) {
		return "", ErrInvalidEmail
	}

	return Email(normalized), nil
}

// String returns the raw email.
func (e Email) String() string {
	return string(e)
}

// Description is an optional free-text note.
type Description string

// NewDescription creates a Description from a raw string. Empty is allowed.
func NewDescription(raw string) (Description, error) {
	trimmed := strings.TrimSpace(raw)

	if len(trimmed) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return Description(trimmed), nil
}

// String returns the raw description.
func (d Description) String() string {
	return string(d)
}

// Frequency is a recurring-schedule interval.
type Frequency string

// Supported frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// NewFrequency creates a Frequency from a raw string.
func NewFrequency(raw string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(raw)))

	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, raw)
}

// String returns the raw frequency.
func (f Frequency) String() string {
	return string(f)
}
