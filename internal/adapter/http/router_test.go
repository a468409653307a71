package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/hucha/internal/adapter/http/handler"
	"github.com/iho/hucha/internal/usecase"
)

type okUserService struct{}

func (okUserService) CreateUser(context.Context, usecase.CreateUserInput) (string, error) {
	return "id", nil
}
func (okUserService) UpdateUser(context.Context, usecase.UpdateUserInput) (string, error) {
	return "id", nil
}
func (okUserService) GetUser(context.Context, string) (*usecase.UserDTO, error) {
	return &usecase.UserDTO{}, nil
}
func (okUserService) ListUsers(context.Context, usecase.ListQuery) (*usecase.Page[usecase.UserDTO], error) {
	return &usecase.Page[usecase.UserDTO]{}, nil
}

type okAccountService struct{}

func (okAccountService) CreateAccount(context.Context, usecase.CreateAccountInput) (string, error) {
	return "id", nil
}
func (okAccountService) UpdateAccount(context.Context, usecase.UpdateAccountInput) (string, error) {
	return "id", nil
}
func (okAccountService) DeleteAccount(context.Context, string) error { return nil }
func (okAccountService) GetAccount(context.Context, string) (*usecase.AccountDTO, error) {
	return &usecase.AccountDTO{}, nil
}
func (okAccountService) ListAccounts(context.Context, usecase.ListQuery) (*usecase.Page[usecase.AccountDTO], error) {
	return &usecase.Page[usecase.AccountDTO]{}, nil
}

type okCategoryService struct{}

func (okCategoryService) CreateCategory(context.Context, usecase.CreateCategoryInput) (string, error) {
	return "id", nil
}
func (okCategoryService) UpdateCategory(context.Context, usecase.UpdateCategoryInput) (string, error) {
	return "id", nil
}
func (okCategoryService) DeleteCategory(context.Context, string) error { return nil }
func (okCategoryService) GetCategory(context.Context, string) (*usecase.CategoryDTO, error) {
	return &usecase.CategoryDTO{}, nil
}
func (okCategoryService) ListCategories(context.Context, usecase.ListQuery) (*usecase.Page[usecase.CategoryDTO], error) {
	return &usecase.Page[usecase.CategoryDTO]{}, nil
}

type okNamedService struct{}

func (okNamedService) Create(context.Context, usecase.CreateNamedInput) (string, error) {
	return "id", nil
}
func (okNamedService) Update(context.Context, usecase.UpdateNamedInput) (string, error) {
	return "id", nil
}
func (okNamedService) Delete(context.Context, string) error { return nil }
func (okNamedService) Get(context.Context, string) (*usecase.NamedDTO, error) {
	return &usecase.NamedDTO{}, nil
}
func (okNamedService) List(context.Context, usecase.ListQuery) (*usecase.Page[usecase.NamedDTO], error) {
	return &usecase.Page[usecase.NamedDTO]{}, nil
}

type okConceptService struct{}

func (okConceptService) CreateConcept(context.Context, usecase.CreateConceptInput) (string, error) {
	return "id", nil
}
func (okConceptService) UpdateConcept(context.Context, usecase.UpdateConceptInput) (string, error) {
	return "id", nil
}
func (okConceptService) DeleteConcept(context.Context, string) error { return nil }
func (okConceptService) GetConcept(context.Context, string) (*usecase.ConceptDTO, error) {
	return &usecase.ConceptDTO{}, nil
}
func (okConceptService) ListConcepts(context.Context, usecase.ListQuery) (*usecase.Page[usecase.ConceptDTO], error) {
	return &usecase.Page[usecase.ConceptDTO]{}, nil
}

type okExpenseService struct{}

func (okExpenseService) CreateExpense(context.Context, usecase.CreateExpenseInput) (string, error) {
	return "id", nil
}
func (okExpenseService) UpdateExpense(context.Context, usecase.UpdateExpenseInput) (string, error) {
	return "id", nil
}
func (okExpenseService) DeleteExpense(context.Context, string) error { return nil }
func (okExpenseService) GetExpense(context.Context, string) (*usecase.ExpenseDTO, error) {
	return &usecase.ExpenseDTO{}, nil
}
func (okExpenseService) ListExpenses(context.Context, usecase.ListQuery) (*usecase.Page[usecase.ExpenseDTO], error) {
	return &usecase.Page[usecase.ExpenseDTO]{}, nil
}

type okIncomeService struct{}

func (okIncomeService) CreateIncome(context.Context, usecase.CreateIncomeInput) (string, error) {
	return "id", nil
}
func (okIncomeService) UpdateIncome(context.Context, usecase.UpdateIncomeInput) (string, error) {
	return "id", nil
}
func (okIncomeService) DeleteIncome(context.Context, string) error { return nil }
func (okIncomeService) GetIncome(context.Context, string) (*usecase.IncomeDTO, error) {
	return &usecase.IncomeDTO{}, nil
}
func (okIncomeService) ListIncomes(context.Context, usecase.ListQuery) (*usecase.Page[usecase.IncomeDTO], error) {
	return &usecase.Page[usecase.IncomeDTO]{}, nil
}

type okTransferService struct{}

func (okTransferService) CreateTransfer(context.Context, usecase.CreateTransferInput) (string, error) {
	return "id", nil
}
func (okTransferService) DeleteTransfer(context.Context, string) error { return nil }
func (okTransferService) GetTransfer(context.Context, string) (*usecase.TransferDTO, error) {
	return &usecase.TransferDTO{}, nil
}
func (okTransferService) ListTransfers(context.Context, usecase.ListQuery) (*usecase.Page[usecase.TransferDTO], error) {
	return &usecase.Page[usecase.TransferDTO]{}, nil
}

type okScheduledExpenseService struct{}

func (okScheduledExpenseService) CreateScheduledExpense(context.Context, usecase.CreateScheduledExpenseInput) (string, error) {
	return "id", nil
}
func (okScheduledExpenseService) DeleteScheduledExpense(context.Context, string) error { return nil }
func (okScheduledExpenseService) GetScheduledExpense(context.Context, string) (*usecase.ScheduledExpenseDTO, error) {
	return &usecase.ScheduledExpenseDTO{}, nil
}
func (okScheduledExpenseService) ListScheduledExpenses(context.Context, usecase.ListQuery) (*usecase.Page[usecase.ScheduledExpenseDTO], error) {
	return &usecase.Page[usecase.ScheduledExpenseDTO]{}, nil
}

type okScheduledIncomeService struct{}

func (okScheduledIncomeService) CreateScheduledIncome(context.Context, usecase.CreateScheduledIncomeInput) (string, error) {
	return "id", nil
}
func (okScheduledIncomeService) DeleteScheduledIncome(context.Context, string) error { return nil }
func (okScheduledIncomeService) GetScheduledIncome(context.Context, string) (*usecase.ScheduledIncomeDTO, error) {
	return &usecase.ScheduledIncomeDTO{}, nil
}
func (okScheduledIncomeService) ListScheduledIncomes(context.Context, usecase.ListQuery) (*usecase.Page[usecase.ScheduledIncomeDTO], error) {
	return &usecase.Page[usecase.ScheduledIncomeDTO]{}, nil
}

type okDashboardService struct{}

func (okDashboardService) GetSummary(context.Context, string, string) (*usecase.DashboardSummary, error) {
	return &usecase.DashboardSummary{}, nil
}

func newTestRouter() http.Handler {
	return NewRouter(RouterConfig{
		Logger:                  zerolog.Nop(),
		UserHandler:             handler.NewUserHandler(okUserService{}),
		AccountHandler:          handler.NewAccountHandler(okAccountService{}),
		CategoryHandler:         handler.NewCategoryHandler(okCategoryService{}),
		ClientHandler:           handler.NewNamedHandler(okNamedService{}),
		PayeeHandler:            handler.NewNamedHandler(okNamedService{}),
		PersonHandler:           handler.NewNamedHandler(okNamedService{}),
		PaymentMethodHandler:    handler.NewNamedHandler(okNamedService{}),
		ConceptHandler:          handler.NewConceptHandler(okConceptService{}),
		ExpenseHandler:          handler.NewExpenseHandler(okExpenseService{}),
		IncomeHandler:           handler.NewIncomeHandler(okIncomeService{}),
		TransferHandler:         handler.NewTransferHandler(okTransferService{}),
		ScheduledExpenseHandler: handler.NewScheduledExpenseHandler(okScheduledExpenseService{}),
		ScheduledIncomeHandler:  handler.NewScheduledIncomeHandler(okScheduledIncomeService{}),
		DashboardHandler:        handler.NewDashboardHandler(okDashboardService{}),
		HealthHandler:           handler.NewHealthHandler(nil, nil),
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"list accounts", http.MethodGet, "/api/v1/accounts", "", http.StatusOK},
		{"create client", http.MethodPost, "/api/v1/clients", `{"name":"Acme"}`, http.StatusCreated},
		{"get payment method", http.MethodGet, "/api/v1/payment-methods/pm-1", "", http.StatusOK},
		{"create expense", http.MethodPost, "/api/v1/expenses", `{"amount":"10"}`, http.StatusCreated},
		{"delete scheduled income", http.MethodDelete, "/api/v1/scheduled-incomes/si-1", "", http.StatusNoContent},
		{"dashboard", http.MethodGet, "/api/v1/dashboard?month=2026-08", "", http.StatusOK},
		{"metrics endpoint", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/holds", "", http.StatusNotFound},
		{"transfer update not routed", http.MethodPut, "/api/v1/transfers/tr-1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}

			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set(handler.OwnerHeader, "user-1")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}
