package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/openballot/ledger/internal/adapters/clock"
	handler "github.com/openballot/ledger/internal/adapters/handler/http"
	"github.com/openballot/ledger/internal/adapters/notifier"
	"github.com/openballot/ledger/internal/adapters/repository/memory"
	"github.com/openballot/ledger/internal/adapters/repository/postgres"
	"github.com/openballot/ledger/internal/config"
	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
	"github.com/openballot/ledger/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	sysClock := clock.System{}

	var store ports.LedgerStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		store = postgres.NewLedgerRepository(db, sysClock)
		logger.Info("using postgres ledger store")
	} else {
		store = memory.NewStore(sysClock)
		logger.Info("using in-memory ledger store")
	}

	broadcaster := notifier.NewBroadcaster(logger)
	service := services.NewLedgerService(store, broadcaster, sysClock, domain.Account(cfg.Owner), logger)

	pollHandler := handler.NewPollHandler(service)
	voteHandler := handler.NewVoteHandler(service)
	adminHandler := handler.NewAdminHandler(service)
	eventsHandler := handler.NewEventsHandler(broadcaster)
	auth := handler.NewAccountAuth(cfg.JWTSecret)

	router := handler.NewHandler(pollHandler, voteHandler, adminHandler, eventsHandler, auth)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
