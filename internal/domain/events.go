package domain

import "github.com/shopspring/decimal"

// Event types
const (
	EventTypeTransferRegistered = "transfer.registered"
	EventTypeTransferDeleted    = "transfer.deleted"
	EventTypeExpenseRegistered  = "expense.registered"
	EventTypeExpenseDeleted     = "expense.deleted"
	EventTypeIncomeRegistered   = "income.registered"
	EventTypeIncomeDeleted      = "income.deleted"
)

// Event is a transient notification raised by an aggregate during a state
// change. Events are returned from the operation that raised them, applied
// once inside the same transaction, then discarded. They are never persisted.
type Event interface {
	EventType() string
}

// TransferRegistered is raised when a transfer is created. Applying it
// debits the source account and credits the destination account.
type TransferRegistered struct {
	TransferID    string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

func (TransferRegistered) EventType() string { return EventTypeTransferRegistered }

// TransferDeleted is raised when a transfer is marked as deleted. Applying
// it moves the amount back from the destination to the source account.
type TransferDeleted struct {
	TransferID    string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

func (TransferDeleted) EventType() string { return EventTypeTransferDeleted }

// ExpenseRegistered is raised when an expense is created. Applying it
// withdraws the expense amount from the paying account.
type ExpenseRegistered struct {
	ExpenseID string
	AccountID string
	Amount    decimal.Decimal
}

func (ExpenseRegistered) EventType() string { return EventTypeExpenseRegistered }

// ExpenseDeleted is raised when an expense is marked as deleted. Applying it
// deposits the amount back into the paying account.
type ExpenseDeleted struct {
	ExpenseID string
	AccountID string
	Amount    decimal.Decimal
}

func (ExpenseDeleted) EventType() string { return EventTypeExpenseDeleted }

// IncomeRegistered is raised when an income is created. Applying it deposits
// the income amount into the receiving account.
type IncomeRegistered struct {
	IncomeID  string
	AccountID string
	Amount    decimal.Decimal
}

func (IncomeRegistered) EventType() string { return EventTypeIncomeRegistered }

// IncomeDeleted is raised when an income is marked as deleted. Applying it
// withdraws the amount from the receiving account, reversing the effect of
// the original registration.
type IncomeDeleted struct {
	IncomeID  string
	AccountID string
	Amount    decimal.Decimal
}

func (IncomeDeleted) EventType() string { return EventTypeIncomeDeleted }
