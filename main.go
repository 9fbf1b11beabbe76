// Package main is the entry point for the expense tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/spendwise/expense-api/internal/api"
	"github.com/spendwise/expense-api/internal/auth"
	"github.com/spendwise/expense-api/internal/config"
	"github.com/spendwise/expense-api/internal/database"
	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/repository"
	"github.com/spendwise/expense-api/internal/repository/jsonfile"
	"github.com/spendwise/expense-api/internal/repository/memory"
	"github.com/spendwise/expense-api/internal/service"
	"github.com/spendwise/expense-api/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users    repository.UserStore
	expenses repository.ExpenseStore
	budgets  repository.BudgetStore
	close    func()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("expense-api %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	logger.InitHashSalt()
	decimal.MarshalJSONWithoutQuotes = true
	gin.SetMode(gin.ReleaseMode)

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OTelExporter, cfg.ServiceName)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open stores")
	}
	defer st.close()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	server := api.New(cfg.APIPrefix, api.Services{
		Accounts: service.NewAccounts(st.users, tokens),
		Expenses: service.NewExpenses(st.expenses),
		Budgets:  service.NewBudgets(st.budgets, st.expenses),
		Stats:    service.NewStats(st.expenses, time.Now, cfg.Location),
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(server.Handler(), "expense-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("addr", httpServer.Addr).
			Str("prefix", cfg.APIPrefix).
			Str("backend", cfg.StoreBackend).
			Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// openStores builds the configured backend. BUDGET_FILE, when set, moves
// budgets into a JSON file regardless of backend.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	st := &stores{close: func() {}}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		st.users = memory.NewUserStore()
		st.expenses = memory.NewExpenseStore()
		st.budgets = memory.NewBudgetStore()
		logger.Log.Warn().Msg("Using in-memory store; data is lost on restart")

	default:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Log.Info().Msg("Database initialized successfully")

		st.users = repository.NewUserRepository(pool)
		st.expenses = repository.NewExpenseRepository(pool)
		st.budgets = repository.NewBudgetRepository(pool)
		st.close = pool.Close
	}

	if cfg.BudgetFile != "" {
		st.budgets = jsonfile.NewBudgetStore(cfg.BudgetFile)
		logger.Log.Info().Str("path", cfg.BudgetFile).Msg("Budgets stored in file")
	}

	return st, nil
}
