package domain

import "errors"

var (
	// Value object errors
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidDescription = errors.New("description too long")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidDate        = errors.New("invalid date")

	// Account errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeBalance   = errors.New("initial balance cannot be negative")

	// Transfer errors
	ErrSameAccount = errors.New("cannot transfer to same account")
)
