package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-course-payments/internal/config"
	kafkax "github.com/ariefcatur/go-course-payments/internal/kafka"
	"github.com/ariefcatur/go-course-payments/internal/ledger"
	"github.com/ariefcatur/go-course-payments/internal/payments"
	"github.com/ariefcatur/go-course-payments/internal/postgres"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "ledger")
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.PostgresDSN == "" || len(cfg.KafkaBrokers) == 0 {
		logger.Error("POSTGRES_DSN and KAFKA_BROKERS are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := &ledger.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("ensure schema", "err", err)
		os.Exit(1)
	}
	svc := &ledger.Service{Store: repo, Logger: logger}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.LedgerGroup, payments.TopicPaymentCaptured, cfg.LedgerWorkers)
	logger.Info("consumer started", "group", cfg.LedgerGroup, "topic", payments.TopicPaymentCaptured, "workers", cfg.LedgerWorkers)

	// Start returns nil once ctx is cancelled and all workers are done.
	if err := cons.Start(ctx, svc.HandleCaptured); err != nil {
		logger.Error("consumer exit", "err", err)
		os.Exit(1)
	}
	logger.Info("consumer stopped")
}
