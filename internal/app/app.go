// Package app wires the infrastructure, repositories, use cases and HTTP
// transport together and runs the server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/hucha/internal/adapter/http"
	"github.com/iho/hucha/internal/adapter/http/handler"
	"github.com/iho/hucha/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/hucha/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/hucha/internal/adapter/repository/redis"
	"github.com/iho/hucha/internal/infrastructure/config"
	"github.com/iho/hucha/internal/infrastructure/logger"
	"github.com/iho/hucha/internal/infrastructure/metrics"
	"github.com/iho/hucha/internal/infrastructure/postgres"
	"github.com/iho/hucha/internal/infrastructure/redis"
	"github.com/iho/hucha/internal/infrastructure/scheduler"
	"github.com/iho/hucha/internal/usecase"
)

// Run starts the service and blocks until ctx is cancelled or a SIGINT/SIGTERM
// arrives, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	idGen := postgresRepo.NewULIDGenerator()
	checker := postgresRepo.NewReferenceChecker(pool)
	cache := redisRepo.NewCache(redisClient)

	accountRepo := postgresRepo.NewAccountRepository()

	// Balance-affecting events are applied inside the same transaction as
	// the movement that produced them.
	dispatcher := usecase.NewDispatcher()
	usecase.NewBalanceApplier(accountRepo).Register(dispatcher)

	appMetrics := metrics.New()

	deps := usecase.Deps{
		Tx:       txManager,
		Cache:    cache,
		Events:   dispatcher,
		IDGen:    idGen,
		Checker:  checker,
		CacheTTL: cfg.CacheTTL,
		Metrics:  appMetrics,
	}

	cronRunner := scheduler.NewRunner()

	// Use cases
	userUC := usecase.NewUserUseCase(deps, postgresRepo.NewUserRepository(), postgresRepo.NewUserReadRepository(pool))
	accountUC := usecase.NewAccountUseCase(deps, accountRepo, postgresRepo.NewAccountReadRepository(pool))
	categoryUC := usecase.NewCategoryUseCase(deps, postgresRepo.NewCategoryRepository(), postgresRepo.NewCategoryReadRepository(pool))
	clientUC := usecase.NewClientUseCase(deps, postgresRepo.NewClientRepository(), postgresRepo.NewNamedReadRepository(pool, "clients"))
	payeeUC := usecase.NewPayeeUseCase(deps, postgresRepo.NewPayeeRepository(), postgresRepo.NewNamedReadRepository(pool, "payees"))
	personUC := usecase.NewPersonUseCase(deps, postgresRepo.NewPersonRepository(), postgresRepo.NewNamedReadRepository(pool, "persons"))
	paymentMethodUC := usecase.NewPaymentMethodUseCase(deps, postgresRepo.NewPaymentMethodRepository(), postgresRepo.NewNamedReadRepository(pool, "payment_methods"))
	conceptUC := usecase.NewConceptUseCase(deps, postgresRepo.NewConceptRepository(), postgresRepo.NewConceptReadRepository(pool))
	expenseUC := usecase.NewExpenseUseCase(deps, postgresRepo.NewExpenseRepository(), postgresRepo.NewExpenseReadRepository(pool))
	incomeUC := usecase.NewIncomeUseCase(deps, postgresRepo.NewIncomeRepository(), postgresRepo.NewIncomeReadRepository(pool))
	transferUC := usecase.NewTransferUseCase(deps, postgresRepo.NewTransferRepository(), postgresRepo.NewTransferReadRepository(pool))
	scheduledExpenseUC := usecase.NewScheduledExpenseUseCase(deps, cronRunner, postgresRepo.NewScheduledExpenseRepository(), postgresRepo.NewScheduledExpenseReadRepository(pool))
	scheduledIncomeUC := usecase.NewScheduledIncomeUseCase(deps, cronRunner, postgresRepo.NewScheduledIncomeRepository(), postgresRepo.NewScheduledIncomeReadRepository(pool))
	dashboardUC := usecase.NewDashboardUseCase(deps, postgresRepo.NewDashboardReader(pool))

	// Recurring rules survive restarts: on boot the active rows are loaded
	// from postgres and re-registered with the cron runner.
	recurring := scheduler.NewRecurringMovements(cronRunner, postgresRepo.NewRuleStore(pool), expenseUC, incomeUC, appMetrics)
	if cfg.SchedulerEnabled {
		if err := recurring.Start(ctx); err != nil {
			return fmt.Errorf("start recurring movements: %w", err)
		}
		defer recurring.Stop(context.Background())
	}

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:                  appLogger,
		UserHandler:             handler.NewUserHandler(userUC),
		AccountHandler:          handler.NewAccountHandler(accountUC),
		CategoryHandler:         handler.NewCategoryHandler(categoryUC),
		ClientHandler:           handler.NewNamedHandler(clientUC),
		PayeeHandler:            handler.NewNamedHandler(payeeUC),
		PersonHandler:           handler.NewNamedHandler(personUC),
		PaymentMethodHandler:    handler.NewNamedHandler(paymentMethodUC),
		ConceptHandler:          handler.NewConceptHandler(conceptUC),
		ExpenseHandler:          handler.NewExpenseHandler(expenseUC),
		IncomeHandler:           handler.NewIncomeHandler(incomeUC),
		TransferHandler:         handler.NewTransferHandler(transferUC),
		ScheduledExpenseHandler: handler.NewScheduledExpenseHandler(&scheduledExpenseSyncer{scheduledExpenseUC, recurring}),
		ScheduledIncomeHandler:  handler.NewScheduledIncomeHandler(&scheduledIncomeSyncer{scheduledIncomeUC, recurring}),
		DashboardHandler:        handler.NewDashboardHandler(dashboardUC),
		HealthHandler:           handler.NewHealthHandler(pool, redisClient),
		RateLimiter:             middleware.NewRateLimiter(100, 200),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// scheduledExpenseSyncer registers the cron job for a new rule immediately,
// so it fires without waiting for a restart resync.
type scheduledExpenseSyncer struct {
	*usecase.ScheduledExpenseUseCase
	recurring *scheduler.RecurringMovements
}

func (s *scheduledExpenseSyncer) CreateScheduledExpense(ctx context.Context, input usecase.CreateScheduledExpenseInput) (string, error) {
	id, err := s.ScheduledExpenseUseCase.CreateScheduledExpense(ctx, input)
	if err != nil {
		return "", err
	}
	if err := s.recurring.SyncExpense(ctx, id); err != nil {
		log.Warn().Err(err).Str("rule_id", id).Msg("failed to schedule recurring expense")
	}
	return id, nil
}

type scheduledIncomeSyncer struct {
	*usecase.ScheduledIncomeUseCase
	recurring *scheduler.RecurringMovements
}

func (s *scheduledIncomeSyncer) CreateScheduledIncome(ctx context.Context, input usecase.CreateScheduledIncomeInput) (string, error) {
	id, err := s.ScheduledIncomeUseCase.CreateScheduledIncome(ctx, input)
	if err != nil {
		return "", err
	}
	if err := s.recurring.SyncIncome(ctx, id); err != nil {
		log.Warn().Err(err).Str("rule_id", id).Msg("failed to schedule recurring income")
	}
	return id, nil
}
