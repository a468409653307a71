package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/hucha/internal/adapter/http/handler"
	"github.com/iho/hucha/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger zerolog.Logger

	UserHandler             *handler.UserHandler
	AccountHandler          *handler.AccountHandler
	CategoryHandler         *handler.CategoryHandler
	ClientHandler           *handler.NamedHandler
	PayeeHandler            *handler.NamedHandler
	PersonHandler           *handler.NamedHandler
	PaymentMethodHandler    *handler.NamedHandler
	ConceptHandler          *handler.ConceptHandler
	ExpenseHandler          *handler.ExpenseHandler
	IncomeHandler           *handler.IncomeHandler
	TransferHandler         *handler.TransferHandler
	ScheduledExpenseHandler *handler.ScheduledExpenseHandler
	ScheduledIncomeHandler  *handler.ScheduledIncomeHandler
	DashboardHandler        *handler.DashboardHandler
	HealthHandler           *handler.HealthHandler

	// RateLimiter is optional; nil disables per-IP limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/", cfg.UserHandler.List)
			r.Get("/{id}", cfg.UserHandler.Get)
			r.Put("/{id}", cfg.UserHandler.Update)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
			r.Get("/{id}", cfg.CategoryHandler.Get)
			r.Put("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		mountNamed(r, "/clients", cfg.ClientHandler)
		mountNamed(r, "/payees", cfg.PayeeHandler)
		mountNamed(r, "/persons", cfg.PersonHandler)
		mountNamed(r, "/payment-methods", cfg.PaymentMethodHandler)

		r.Route("/concepts", func(r chi.Router) {
			r.Post("/", cfg.ConceptHandler.Create)
			r.Get("/", cfg.ConceptHandler.List)
			r.Get("/{id}", cfg.ConceptHandler.Get)
			r.Put("/{id}", cfg.ConceptHandler.Update)
			r.Delete("/{id}", cfg.ConceptHandler.Delete)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/", cfg.ExpenseHandler.List)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Put("/{id}", cfg.ExpenseHandler.Update)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
		})

		r.Route("/incomes", func(r chi.Router) {
			r.Post("/", cfg.IncomeHandler.Create)
			r.Get("/", cfg.IncomeHandler.List)
			r.Get("/{id}", cfg.IncomeHandler.Get)
			r.Put("/{id}", cfg.IncomeHandler.Update)
			r.Delete("/{id}", cfg.IncomeHandler.Delete)
		})

		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/", cfg.TransferHandler.List)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Delete("/{id}", cfg.TransferHandler.Delete)
		})

		r.Route("/scheduled-expenses", func(r chi.Router) {
			r.Post("/", cfg.ScheduledExpenseHandler.Create)
			r.Get("/", cfg.ScheduledExpenseHandler.List)
			r.Get("/{id}", cfg.ScheduledExpenseHandler.Get)
			r.Delete("/{id}", cfg.ScheduledExpenseHandler.Delete)
		})

		r.Route("/scheduled-incomes", func(r chi.Router) {
			r.Post("/", cfg.ScheduledIncomeHandler.Create)
			r.Get("/", cfg.ScheduledIncomeHandler.List)
			r.Get("/{id}", cfg.ScheduledIncomeHandler.Get)
			r.Delete("/{id}", cfg.ScheduledIncomeHandler.Delete)
		})

		r.Get("/dashboard", cfg.DashboardHandler.Summary)
	})

	return r
}

func mountNamed(r chi.Router, pattern string, h *handler.NamedHandler) {
	r.Route(pattern, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
