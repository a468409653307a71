package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/usecase"
)

// NamedRequest is the body shared by the catalog entities (clients,
// payees, persons, payment methods).
type NamedRequest struct {
	Name string `json:"name"`
}

// ToCreateInput converts the request to a usecase input.
func (r *NamedRequest) ToCreateInput(ownerID string) usecase.CreateNamedInput {
	return usecase.CreateNamedInput{
		OwnerID: ownerID,
		Name:    r.Name,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *NamedRequest) ToUpdateInput(id, ownerID string) usecase.UpdateNamedInput {
	return usecase.UpdateNamedInput{
		ID:      id,
		OwnerID: ownerID,
		Name:    r.Name,
	}
}

// AccountRequest is the body for creating or renaming an account.
// InitialBalance is ignored on update.
type AccountRequest struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToCreateInput converts the request to a usecase input.
func (r *AccountRequest) ToCreateInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:        ownerID,
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *AccountRequest) ToUpdateInput(id, ownerID string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:      id,
		OwnerID: ownerID,
		Name:    r.Name,
	}
}

// CategoryRequest is the body for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToCreateInput converts the request to a usecase input.
func (r *CategoryRequest) ToCreateInput(ownerID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *CategoryRequest) ToUpdateInput(id, ownerID string) usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		ID:          id,
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// ConceptRequest is the body for creating or updating a concept.
type ConceptRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// ToCreateInput converts the request to a usecase input.
func (r *ConceptRequest) ToCreateInput(ownerID string) usecase.CreateConceptInput {
	return usecase.CreateConceptInput{
		OwnerID:    ownerID,
		Name:       r.Name,
		CategoryID: r.CategoryID,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *ConceptRequest) ToUpdateInput(id, ownerID string) usecase.UpdateConceptInput {
	return usecase.UpdateConceptInput{
		ID:         id,
		OwnerID:    ownerID,
		Name:       r.Name,
		CategoryID: r.CategoryID,
	}
}

// UserRequest is the body for registering or updating a user.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToCreateInput converts the request to a usecase input.
func (r *UserRequest) ToCreateInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *UserRequest) ToUpdateInput(id string) usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		ID:    id,
		Name:  r.Name,
		Email: r.Email,
	}
}

// ExpenseRequest is the body for registering or correcting an expense.
type ExpenseRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	ConceptID       string          `json:"concept_id"`
	PayeeID         string          `json:"payee_id"`
	PersonID        string          `json:"person_id"`
	AccountID       string          `json:"account_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Description     string          `json:"description"`
}

// ToCreateInput converts the request to a usecase input.
func (r *ExpenseRequest) ToCreateInput(ownerID string) usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Date:            r.Date,
		ConceptID:       r.ConceptID,
		PayeeID:         r.PayeeID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
		Description:     r.Description,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *ExpenseRequest) ToUpdateInput(id, ownerID string) usecase.UpdateExpenseInput {
	return usecase.UpdateExpenseInput{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Date:            r.Date,
		ConceptID:       r.ConceptID,
		PayeeID:         r.PayeeID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
		Description:     r.Description,
	}
}

// IncomeRequest is the body for registering or correcting an income.
type IncomeRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	ConceptID       string          `json:"concept_id"`
	ClientID        string          `json:"client_id"`
	PersonID        string          `json:"person_id"`
	AccountID       string          `json:"account_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Description     string          `json:"description"`
}

// ToCreateInput converts the request to a usecase input.
func (r *IncomeRequest) ToCreateInput(ownerID string) usecase.CreateIncomeInput {
	return usecase.CreateIncomeInput{
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Date:            r.Date,
		ConceptID:       r.ConceptID,
		ClientID:        r.ClientID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
		Description:     r.Description,
	}
}

// ToUpdateInput converts the request to a usecase input.
func (r *IncomeRequest) ToUpdateInput(id, ownerID string) usecase.UpdateIncomeInput {
	return usecase.UpdateIncomeInput{
		ID:              id,
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Date:            r.Date,
		ConceptID:       r.ConceptID,
		ClientID:        r.ClientID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
		Description:     r.Description,
	}
}

// TransferRequest is the body for registering a transfer.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
}

// ToCreateInput converts the request to a usecase input.
func (r *TransferRequest) ToCreateInput(ownerID string) usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		OwnerID:       ownerID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Date:          r.Date,
		Description:   r.Description,
	}
}

// ScheduledExpenseRequest is the body for creating a recurring expense rule.
type ScheduledExpenseRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Frequency       string          `json:"frequency"`
	NextRun         time.Time       `json:"next_run"`
	ConceptID       string          `json:"concept_id"`
	PayeeID         string          `json:"payee_id"`
	PersonID        string          `json:"person_id"`
	AccountID       string          `json:"account_id"`
	PaymentMethodID string          `json:"payment_method_id"`
}

// ToCreateInput converts the request to a usecase input.
func (r *ScheduledExpenseRequest) ToCreateInput(ownerID string) usecase.CreateScheduledExpenseInput {
	return usecase.CreateScheduledExpenseInput{
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Frequency:       r.Frequency,
		NextRun:         r.NextRun,
		ConceptID:       r.ConceptID,
		PayeeID:         r.PayeeID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
	}
}

// ScheduledIncomeRequest is the body for creating a recurring income rule.
type ScheduledIncomeRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Frequency       string          `json:"frequency"`
	NextRun         time.Time       `json:"next_run"`
	ConceptID       string          `json:"concept_id"`
	ClientID        string          `json:"client_id"`
	PersonID        string          `json:"person_id"`
	AccountID       string          `json:"account_id"`
	PaymentMethodID string          `json:"payment_method_id"`
}

// ToCreateInput converts the request to a usecase input.
func (r *ScheduledIncomeRequest) ToCreateInput(ownerID string) usecase.CreateScheduledIncomeInput {
	return usecase.CreateScheduledIncomeInput{
		OwnerID:         ownerID,
		Amount:          r.Amount,
		Frequency:       r.Frequency,
		NextRun:         r.NextRun,
		ConceptID:       r.ConceptID,
		ClientID:        r.ClientID,
		PersonID:        r.PersonID,
		AccountID:       r.AccountID,
		PaymentMethodID: r.PaymentMethodID,
	}
}
