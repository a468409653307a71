package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledExpense is a recurring expense rule. Execution is delegated to
// an external scheduler; this aggregate only holds the job id and schedule
// metadata. There is no in-place update: reschedule by recreate-and-delete.
type ScheduledExpense struct {
	ID              string
	OwnerID         string
	Amount          Amount
	Frequency       Frequency
	NextRun         time.Time
	ConceptID       string
	PayeeID         string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	JobID           string
	Active          bool
	CreatedAt       time.Time
}

// NewScheduledExpense creates a scheduled expense rule.
func NewScheduledExpense(id, ownerID string, amount decimal.Decimal, frequency string, nextRun time.Time, conceptID, payeeID, personID, accountID, paymentMethodID, jobID string, now time.Time) (*ScheduledExpense, error) {
	a, err := NewAmount(amount)
	if err != nil {
		return nil, err
	}

	f, err := NewFrequency(frequency)
	if err != nil {
		return nil, err
	}

	if nextRun.IsZero() {
		return nil, ErrInvalidDate
	}

	return &ScheduledExpense{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          a,
		Frequency:       f,
		NextRun:         nextRun,
		ConceptID:       conceptID,
		PayeeID:         payeeID,
		PersonID:        personID,
		AccountID:       accountID,
		PaymentMethodID: paymentMethodID,
		JobID:           jobID,
		Active:          true,
		CreatedAt:       now,
	}, nil
}

// ScheduledIncome is a recurring income rule, mirroring ScheduledExpense.
type ScheduledIncome struct {
	ID              string
	OwnerID         string
	Amount          Amount
	Frequency       Frequency
	NextRun         time.Time
	ConceptID       string
	ClientID        string
	PersonID        string
	AccountID       string
	PaymentMethodID string
	JobID           string
	Active          bool
	CreatedAt       time.Time
}

// NewScheduledIncome creates a scheduled income rule.
func NewScheduledIncome(id, ownerID string, amount decimal.Decimal, frequency string, nextRun time.Time, conceptID, clientID, personID, accountID, paymentMethodID, jobID string, now time.Time) (*ScheduledIncome, error) {
	a, err := NewAmount(amount)
	if err != nil {
		return nil, err
	}

	f, err := NewFrequency(frequency)
	if err != nil {
		return nil, err
	}

	if nextRun.IsZero() {
		return nil, ErrInvalidDate
	}

	return &ScheduledIncome{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          a,
		Frequency:       f,
		NextRun:         nextRun,
		ConceptID:       conceptID,
		ClientID:        clientID,
		PersonID:        personID,
		AccountID:       accountID,
		PaymentMethodID: paymentMethodID,
		JobID:           jobID,
		Active:          true,
		CreatedAt:       now,
	}, nil
}
